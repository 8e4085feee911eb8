// Command ledger-cli is a thin client for the household ledger HTTP
// API. It talks JSON to the server and prints responses for humans.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/atharvapisal16/household-ledger/internal/csvio"
)

var (
	baseURL string
	token   string
	section string
	year    int
	month   int
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-cli",
		Short: "Household ledger CLI tool",
		Long:  `A command line interface for the household ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("LEDGER_TOKEN"), "Bearer token (defaults to LEDGER_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&section, "section", "personal", "Ledger section: personal, family or business")
	rootCmd.PersistentFlags().IntVar(&year, "year", time.Now().Year(), "Year filter")
	rootCmd.PersistentFlags().IntVar(&month, "month", 0, "Month filter, 0 for the whole year")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		expenseCmd(),
		importCmd(),
		exportCmd(),
		reportCmd(),
		categoriesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	var fullName string
	cmd := &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Register a new account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/auth/register", map[string]string{
				"username":  args[0],
				"password":  args[1],
				"full_name": fullName,
			})
		},
	}
	cmd.Flags().StringVar(&fullName, "name", "", "Full name of the account holder")
	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and print a bearer token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/auth/login", map[string]string{
				"username": args[0],
				"password": args[1],
			})
		},
	}
}

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage expense records",
	}

	var note string
	addCmd := &cobra.Command{
		Use:   "add <date> <category> <amount>",
		Short: "Add an expense record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON(sectionPath("/expenses/"), map[string]string{
				"date":     args[0],
				"category": args[1],
				"amount":   args[2],
				"note":     note,
			})
		},
	}
	addCmd.Flags().StringVar(&note, "note", "", "Optional note")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List expense records for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return get(sectionPath("/expenses/") + periodQuery())
		},
	}

	var updateNote string
	updateCmd := &cobra.Command{
		Use:   "update <id> <date> <category> <amount>",
		Short: "Update an expense record",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return putJSON(sectionPath("/expenses/"+args[0]), map[string]string{
				"date":     args[1],
				"category": args[2],
				"amount":   args[3],
				"note":     updateNote,
			})
		},
	}
	updateCmd.Flags().StringVar(&updateNote, "note", "", "Optional note")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return del(sectionPath("/expenses/" + args[0]))
		},
	}

	cmd.AddCommand(addCmd, listCmd, updateCmd, deleteCmd)
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import expense rows from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := csvio.ParseImport(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			converted := make([]map[string]string, len(rows))
			for i, row := range rows {
				converted[i] = map[string]string{
					"date":     row.Date,
					"category": row.Category,
					"amount":   row.Amount,
					"note":     row.Note,
				}
			}
			return postJSON(sectionPath("/import"), map[string]any{"rows": converted})
		},
	}
}

func exportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a period's records as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := request(http.MethodGet, sectionPath("/export")+periodQuery(), nil)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Print(string(body))
				return nil
			}
			return os.WriteFile(output, body, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write CSV to a file instead of stdout")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Spending reports for a period",
	}

	for _, kind := range []string{"summary", "categories", "daily", "breakdown"} {
		kind := kind
		cmd.AddCommand(&cobra.Command{
			Use:   kind,
			Short: fmt.Sprintf("Show the %s report", kind),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return get(sectionPath("/reports/"+kind) + periodQuery())
			},
		})
	}
	return cmd
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the known categories of a section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return get(sectionPath("/categories"))
		},
	}
}

func sectionPath(suffix string) string {
	return "/api/v1/sections/" + section + suffix
}

func periodQuery() string {
	return fmt.Sprintf("?year=%d&month=%d", year, month)
}

func get(path string) error {
	body, err := request(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return printJSON(body)
}

func del(path string) error {
	_, err := request(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}

func postJSON(path string, payload any) error {
	return sendJSON(http.MethodPost, path, payload)
}

func putJSON(path string, payload any) error {
	return sendJSON(http.MethodPut, path, payload)
}

func sendJSON(method, path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body, err := request(method, path, data)
	if err != nil {
		return err
	}
	return printJSON(body)
}

// request performs one HTTP call with retries on connection-level
// failures. HTTP error statuses are not retried; the server already
// saw the request.
func request(method, path string, payload []byte) ([]byte, error) {
	client := &http.Client{Timeout: timeout}

	var body []byte
	operation := func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequest(method, baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(err)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(body)))
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

func printJSON(body []byte) error {
	if len(body) == 0 {
		return nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}
