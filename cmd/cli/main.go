package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobank-cli",
		Short: "GoBank CLI tool",
		Long:  `A command line interface for interacting with the GoBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for operator endpoints")

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var openBalance string
	openCmd := &cobra.Command{
		Use:   "open [id]",
		Short: "Open a new account",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			openAccount(id, openBalance)
		},
	}
	openCmd.Flags().StringVar(&openBalance, "balance", "0", "Opening balance")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/"+args[0], nil)
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <id>",
		Short: "Get an account's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/"+args[0]+"/balance", nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/", nil)
		},
	}

	closeCmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Close an account (operator)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/accounts/"+args[0]+"/close", nil)
		},
	}

	var fraudFlag bool
	fraudCmd := &cobra.Command{
		Use:   "fraud <id>",
		Short: "Set an account's fraud flag (operator)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/accounts/"+args[0]+"/fraud", map[string]any{"flag": fraudFlag})
		},
	}
	fraudCmd.Flags().BoolVar(&fraudFlag, "flag", true, "Fraud flag value")

	accountCmd.AddCommand(openCmd, getCmd, balanceCmd, listCmd, closeCmd, fraudCmd)
	rootCmd.AddCommand(accountCmd)

	// Transfer command
	transferCmd := &cobra.Command{
		Use:   "transfer <sender> <receiver> <amount>",
		Short: "Transfer funds between two accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/transfers/", map[string]any{
				"sender_id":   args[0],
				"receiver_id": args[1],
				"amount":      args[2],
			})
		},
	}
	rootCmd.AddCommand(transferCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func openAccount(id, balance string) {
	payload := map[string]any{"opening_balance": balance}
	if id != "" {
		payload["id"] = id
	}
	doJSON(http.MethodPost, "/api/v1/accounts/", payload)
}

// doJSON performs a request and pretty-prints the JSON response.
func doJSON(method, path string, payload any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		fmt.Println(string(data))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\n", resp.StatusCode)
		os.Exit(1)
	}
}
