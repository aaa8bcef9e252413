package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"encrypted-config-value/config"
	"encrypted-config-value/internal/usecase"
)

// decryptConfigCmd は設定ファイルを復号して出力するコマンド。
func decryptConfigCmd() *cobra.Command {
	var file string
	var format string
	var raw bool
	cmd := &cobra.Command{
		Use:   "decrypt-config",
		Short: "Print a config file with every ${enc:...} placeholder decrypted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			keys, closeFn, err := openKeyService(ctx)
			defer closeFn()
			if err != nil {
				return err
			}
			svc := usecase.NewSubstitutionService(keys)

			if raw {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				text, err := svc.ReplaceText(ctx, string(data))
				if err != nil {
					return fmt.Errorf("%s has an error: %w", file, err)
				}
				fmt.Print(text)
				return nil
			}

			sub, err := svc.Substitutor(ctx)
			if err != nil {
				return err
			}
			doc, err := config.LoadDocument(file, sub)
			if err != nil {
				return err
			}
			out, err := renderDocument(doc, format)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON config file (required)")
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "Output format: yaml, json")
	cmd.Flags().BoolVar(&raw, "raw", false, "Substitute placeholders in the raw text without parsing")
	cmd.MarkFlagRequired("file")
	return cmd
}

// renderDocument はドキュメントをYAMLまたはJSONに変換する。
func renderDocument(doc *yaml.Node, format string) ([]byte, error) {
	switch format {
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		var v any
		if err := doc.Decode(&v); err != nil {
			return nil, err
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// checkConfigCmd は設定ファイルの全てのプレースホルダを復号できるか検証するコマンド。
func checkConfigCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "check-config",
		Short: "Verify that every ${enc:...} placeholder in a config file can be decrypted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			keys, closeFn, err := openKeyService(ctx)
			defer closeFn()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			doc, err := config.ParseDocument(data)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			result, err := usecase.NewSubstitutionService(keys).CheckDocument(ctx, doc)
			if err != nil {
				return err
			}
			if !result.OK() {
				docErr := &config.DocumentError{Path: file, Err: result.Failure}
				return errors.Join(docErr, errors.New(color.CyanString("→")+" Cause: "+result.Failure.Unwrap().Error()))
			}

			success("%s: %d placeholder(s) can be decrypted", file, result.Placeholders)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON config file (required)")
	cmd.MarkFlagRequired("file")
	return cmd
}
