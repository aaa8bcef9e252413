package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"encrypted-config-value/internal/encryption"
	"encrypted-config-value/internal/usecase"
)

// generateKeyCmd は鍵ペアを生成して保存するコマンド。
func generateKeyCmd() *cobra.Command {
	var algorithm string
	var file string
	cmd := &cobra.Command{
		Use:   "generate-random-key",
		Short: "Generate a new random key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := encryption.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var svc *usecase.KeyService
			if file != "" {
				svc = fileKeyService(file)
			} else {
				var closeFn func()
				svc, closeFn, err = openKeyService(ctx)
				defer closeFn()
				if err != nil {
					return err
				}
			}

			pair, err := svc.GenerateKeyPair(ctx, alg)
			if err != nil {
				return fmt.Errorf("failed to generate key: %w", err)
			}

			success("Generated %s key %s", color.YellowString(string(alg)), color.YellowString(svc.Name()))
			if !pair.IsSymmetric() {
				hint("Private key: %s", svc.PrivateName())
			}
			hint("Fingerprint: %s", usecase.Fingerprint(pair.EncryptionKey()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "AES", "Algorithm: AES or RSA")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Key file to create (defaults to the configured key)")
	return cmd
}

// encryptValueCmd は値を暗号化するコマンド。
func encryptValueCmd() *cobra.Command {
	var value string
	cmd := &cobra.Command{
		Use:   "encrypt-config-value",
		Short: "Encrypt a config value",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var token string
			var err error
			if apiURL != "" && keyFile == "" {
				token, err = encryptRemote(ctx, httpClient, apiURL, value)
			} else {
				token, err = encryptLocal(ctx, value)
			}
			if err != nil {
				return err
			}

			fmt.Println(token)
			hint("Use it as %s", color.YellowString("${"+token+"}"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&value, "value", "v", "", "Plaintext value (required)")
	cmd.MarkFlagRequired("value")
	return cmd
}

func encryptLocal(ctx context.Context, plaintext string) (string, error) {
	svc, closeFn, err := openKeyService(ctx)
	defer closeFn()
	if err != nil {
		return "", err
	}
	return svc.EncryptValue(ctx, plaintext)
}

// encryptRemote はサーバーの /v1/values/encrypt を呼び出す。
func encryptRemote(ctx context.Context, client *http.Client, baseURL, plaintext string) (string, error) {
	payload, err := json.Marshal(map[string]string{"plaintext": plaintext})
	if err != nil {
		return "", err
	}

	url := strings.TrimSuffix(baseURL, "/") + "/v1/values/encrypt"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", handleErrorResponse(resp.StatusCode, body)
	}

	var result struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if !encryption.IsEncryptedValue(result.Value) {
		return "", fmt.Errorf("server returned an unexpected value")
	}
	return result.Value, nil
}

// decryptValueCmd は値を復号するコマンド。
func decryptValueCmd() *cobra.Command {
	var value string
	cmd := &cobra.Command{
		Use:   "decrypt-config-value",
		Short: "Decrypt an enc: config value",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeFn, err := openKeyService(ctx)
			defer closeFn()
			if err != nil {
				return err
			}

			token := strings.TrimSuffix(strings.TrimPrefix(value, "${"), "}")
			plaintext, err := svc.DecryptValue(ctx, token)
			if err != nil {
				return fmt.Errorf("failed to decrypt value: %w", err)
			}
			fmt.Println(plaintext)
			return nil
		},
	}
	cmd.Flags().StringVarP(&value, "value", "v", "", "Encrypted value, with or without ${...} (required)")
	cmd.MarkFlagRequired("value")
	return cmd
}

func handleErrorResponse(statusCode int, body []byte) error {
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("server error %s: %s", errResp.Code, errResp.Message)
	}
	return fmt.Errorf("server returned status %d", statusCode)
}
