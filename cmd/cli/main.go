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

	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/config"
	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bip-cli",
		Short: "BIP benefits CLI tool",
		Long:  `A command line interface for managing benefits and transfers through the BIP API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BIP API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(benefitCommand())
	rootCmd.AddCommand(transferCommand())
	rootCmd.AddCommand(migrateCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func benefitCommand() *cobra.Command {
	benefitCmd := &cobra.Command{
		Use:   "benefit",
		Short: "Benefit operations",
	}

	var activeOnly bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List benefits",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/benefits"
			if activeOnly {
				path = "/api/v1/benefits/active"
			}
			doGet(path)
		},
	}
	listCmd.Flags().BoolVar(&activeOnly, "active", false, "List only active benefits")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a benefit by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/benefits/" + args[0])
		},
	}

	var (
		name        string
		description string
		amount      string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a benefit",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/benefits", map[string]any{
				"name":        name,
				"description": description,
				"amount":      amount,
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Benefit name")
	createCmd.Flags().StringVar(&description, "description", "", "Benefit description")
	createCmd.Flags().StringVar(&amount, "amount", "0", "Initial balance")
	createCmd.MarkFlagRequired("name")

	deactivateCmd := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate a benefit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doDelete("/api/v1/benefits/" + args[0])
		},
	}

	benefitCmd.AddCommand(listCmd, getCmd, createCmd, deactivateCmd)

	return benefitCmd
}

func transferCommand() *cobra.Command {
	var (
		sourceID      string
		destinationID string
		amount        string
	)

	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer value between two benefits",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/transfers", map[string]any{
				"source_id":      sourceID,
				"destination_id": destinationID,
				"amount":         amount,
			})
		},
	}
	transferCmd.Flags().StringVar(&sourceID, "from", "", "Source benefit ID")
	transferCmd.Flags().StringVar(&destinationID, "to", "", "Destination benefit ID")
	transferCmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("amount")

	return transferCmd
}

func migrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd)

	return migrateCmd
}

func doGet(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func doPost(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func doDelete(path string) {
	req, err := http.NewRequest(http.MethodDelete, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	if len(body) == 0 {
		fmt.Printf("OK (Status: %d)\n", resp.StatusCode)
		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}
