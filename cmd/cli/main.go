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
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "feeledger-cli",
		Short: "FeeLedger CLI tool",
		Long:  `A command line interface for interacting with the FeeLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FeeLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(feesCmd())
	rootCmd.AddCommand(enrollCmd())
	rootCmd.AddCommand(payCmd())
	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(classesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func feesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fees",
		Short: "Fee schedule operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List fee schedule entries",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/fees/")
		},
	})

	var grade, plan string
	var amount string
	upsert := &cobra.Command{
		Use:   "upsert",
		Short: "Create or replace the fee entry for a grade",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/fees/", map[string]any{
				"grade":            grade,
				"annual_amount":    amount,
				"installment_plan": plan,
			})
		},
	}
	upsert.Flags().StringVar(&grade, "grade", "", "Grade the entry applies to")
	upsert.Flags().StringVar(&amount, "amount", "0", "Annual tuition amount")
	upsert.Flags().StringVar(&plan, "plan", "", "Installment plan label")
	cmd.AddCommand(upsert)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [grade]",
		Short: "Delete the fee entry for a grade",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doDelete("/api/v1/fees/" + args[0])
		},
	})

	return cmd
}

func enrollCmd() *cobra.Command {
	var studentID, studentName, classID string

	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Enroll a student into a class",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/enrollments", map[string]any{
				"student_id":   studentID,
				"student_name": studentName,
				"class_id":     classID,
			})
		},
	}
	cmd.Flags().StringVar(&studentID, "student", "", "Student ID")
	cmd.Flags().StringVar(&studentName, "name", "", "Student name")
	cmd.Flags().StringVar(&classID, "class", "", "Class ID")

	return cmd
}

func payCmd() *cobra.Command {
	var studentID, amount, payer, method, description string

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Record a tuition payment",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/payments", map[string]any{
				"student_id":  studentID,
				"amount":      amount,
				"payer_name":  payer,
				"method":      method,
				"description": description,
			})
		},
	}
	cmd.Flags().StringVar(&studentID, "student", "", "Student ID")
	cmd.Flags().StringVar(&amount, "amount", "0", "Payment amount")
	cmd.Flags().StringVar(&payer, "payer", "", "Payer name")
	cmd.Flags().StringVar(&method, "method", "cash", "Payment method")
	cmd.Flags().StringVar(&description, "description", "", "Payment description")

	return cmd
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Student account operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get [studentID]",
		Short: "Show a student account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/students/" + args[0] + "/account")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "payments [studentID]",
		Short: "List a student's payments",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/students/" + args[0] + "/payments")
		},
	})

	return cmd
}

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconciliation checks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "student [studentID]",
		Short: "Recompute a student's balance from the payment ledger",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/students/" + args[0] + "/reconciliation")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pairing",
		Short: "Check payment to journal entry pairing",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/reconciliation/pairing")
		},
	})

	return cmd
}

func classesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Class roster operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List class rosters",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/classes/")
		},
	})

	var classID, name, grade string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a class roster",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/classes/", map[string]any{
				"class_id": classID,
				"name":     name,
				"grade":    grade,
			})
		},
	}
	create.Flags().StringVar(&classID, "id", "", "Class ID (generated when empty)")
	create.Flags().StringVar(&name, "name", "", "Class name")
	create.Flags().StringVar(&grade, "grade", "", "Grade")
	cmd.AddCommand(create)

	return cmd
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
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	if len(body) == 0 {
		fmt.Printf("OK (Status: %d)\n", resp.StatusCode)
		return
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		fmt.Printf("%s\n", string(body))
		return
	}

	printJSON(decoded)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
