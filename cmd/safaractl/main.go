// safaractl is a small operator CLI for the verification API.
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL string
	HTTP    *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(body []byte) {
	var v any
	if json.Unmarshal(body, &v) == nil {
		p, _ := json.MarshalIndent(v, "", "  ")
		fmt.Println(string(p))
		return
	}
	fmt.Println(string(body))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	baseURL := envOr("SAFARA_URL", "http://localhost:8080")

	root := &cobra.Command{
		Use:   "safaractl",
		Short: "Operator CLI for the Safara verification API",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "API base URL (env SAFARA_URL)")

	cl := &client{BaseURL: baseURL, HTTP: &http.Client{Timeout: 60 * time.Second}}

	var fullName, mobile, email string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Open an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl.BaseURL = baseURL
			b, _ := json.Marshal(map[string]string{
				"fullName": fullName, "mobile": mobile, "email": email,
			})
			status, body, err := cl.do("POST", "/v1/applications", b)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("register failed: status=%d body=%s", status, body)
			}
			cl.print(body)
			return nil
		},
	}
	registerCmd.Flags().StringVar(&fullName, "name", "", "applicant full name")
	registerCmd.Flags().StringVar(&mobile, "mobile", "", "applicant mobile")
	registerCmd.Flags().StringVar(&email, "email", "", "applicant email")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("mobile")
	_ = registerCmd.MarkFlagRequired("email")

	var mediaType string
	attachCmd := &cobra.Command{
		Use:   "attach <application-id> <file>",
		Short: "Attach an identity document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl.BaseURL = baseURL
			raw, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			mt := mediaType
			if mt == "" {
				mt = strings.TrimPrefix(filepath.Ext(args[1]), ".")
			}
			b, _ := json.Marshal(map[string]string{
				"mediaType": mt,
				"content":   base64.StdEncoding.EncodeToString(raw),
			})
			status, body, err := cl.do("POST", "/v1/applications/"+args[0]+"/document", b)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("attach failed: status=%d body=%s", status, body)
			}
			cl.print(body)
			return nil
		},
	}
	attachCmd.Flags().StringVar(&mediaType, "media-type", "", "document media type (default: file extension)")

	verifyCmd := &cobra.Command{
		Use:   "verify <application-id>",
		Short: "Run document verification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl.BaseURL = baseURL
			status, body, err := cl.do("POST", "/v1/applications/"+args[0]+"/verify", []byte("{}"))
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("verify failed: status=%d body=%s", status, body)
			}
			cl.print(body)
			return nil
		},
	}

	finalizeCmd := &cobra.Command{
		Use:   "finalize <application-id>",
		Short: "Finalize and issue the tourist id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl.BaseURL = baseURL
			status, body, err := cl.do("POST", "/v1/applications/"+args[0]+"/finalize", []byte("{}"))
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("finalize failed: status=%d body=%s", status, body)
			}
			cl.print(body)
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <application-id>",
		Short: "Show an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl.BaseURL = baseURL
			status, body, err := cl.do("GET", "/v1/applications/"+args[0], nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("get failed: status=%d body=%s", status, body)
			}
			cl.print(body)
			return nil
		},
	}

	root.AddCommand(registerCmd, attachCmd, verifyCmd, finalizeCmd, getCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
