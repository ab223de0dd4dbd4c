package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
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
		Use:   "gowallet-cli",
		Short: "GoWallet CLI tool",
		Long:  `A command line interface for interacting with the GoWallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoWallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("GOWALLET_TOKEN"), "Bearer token (defaults to GOWALLET_TOKEN)")

	rootCmd.AddCommand(registerCmd(), loginCmd(), walletCmd(), transactionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/users", map[string]string{
				"name":     name,
				"email":    email,
				"password": password,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a JWT token",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
				"email":    email,
				"password": password,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the authenticated user's wallet balance",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/wallet", nil)
		},
	}

	var limit, offset int
	statementCmd := &cobra.Command{
		Use:   "statement",
		Short: "Show the wallet's ledger entries",
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/api/v1/wallet/statement?limit=%d&offset=%d", limit, offset)
			doRequest(http.MethodGet, path, nil)
		},
	}
	statementCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries")
	statementCmd.Flags().IntVar(&offset, "offset", 0, "Number of entries to skip")

	cmd.AddCommand(balanceCmd, statementCmd)

	return cmd
}

func transactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Transaction operations",
	}

	var toUserID, amount, description string
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer funds to another user",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/transactions", map[string]string{
				"to_user_id":  toUserID,
				"amount":      amount,
				"description": description,
			})
		},
	}
	transferCmd.Flags().StringVar(&toUserID, "to", "", "Destination user ID")
	transferCmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer, e.g. 100.50")
	transferCmd.Flags().StringVar(&description, "description", "", "Optional description")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("amount")

	var reason, additionalInfo string
	reverseCmd := &cobra.Command{
		Use:   "reverse <transaction-id>",
		Short: "Reverse a completed transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]string{"reason": reason}
			if additionalInfo != "" {
				body["additional_info"] = additionalInfo
			}
			doRequest(http.MethodPost, "/api/v1/transactions/"+args[0]+"/reverse", body)
		},
	}
	reverseCmd.Flags().StringVar(&reason, "reason", "", "Reason for the reversal")
	reverseCmd.Flags().StringVar(&additionalInfo, "info", "", "Additional context for the reversal")
	reverseCmd.MarkFlagRequired("reason")

	getCmd := &cobra.Command{
		Use:   "get <transaction-id>",
		Short: "Show a transaction with its ledger entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/transactions/"+args[0], nil)
		},
	}

	var page, pageLimit int
	var status, txnType string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the authenticated user's transactions",
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			q.Set("page", fmt.Sprintf("%d", page))
			q.Set("limit", fmt.Sprintf("%d", pageLimit))
			if status != "" {
				q.Set("status", status)
			}
			if txnType != "" {
				q.Set("type", txnType)
			}
			doRequest(http.MethodGet, "/api/v1/transactions?"+q.Encode(), nil)
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&pageLimit, "limit", 20, "Page size")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status (PENDING, COMPLETED, REVERSED, FAILED)")
	listCmd.Flags().StringVar(&txnType, "type", "", "Filter by type (TRANSFER)")

	cmd.AddCommand(transferCmd, reverseCmd, getCmd, listCmd)

	return cmd
}

func doRequest(method, path string, payload any) {
	client := &http.Client{Timeout: timeout}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
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

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
