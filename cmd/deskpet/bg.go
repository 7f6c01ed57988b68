package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var bgCmd = &cobra.Command{
	Use:   "bg",
	Short: "Manage the background gallery",
}

var bgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backgrounds (* marks the active one)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(false)
		if err != nil {
			return err
		}
		defer e.log.Sync()

		g := e.gallery(cmd.Context())
		items := g.Items()
		if len(items) == 0 {
			fmt.Println("No backgrounds yet. Add one with 'deskpet bg upload <file>'")
			return nil
		}
		active := g.Active()
		for i, item := range items {
			mark := " "
			if item.Src == active {
				mark = "*"
			}
			fmt.Printf("%s %2d  %-8s  %s\n", mark, i+1, item.Kind, describe(item.Src))
		}
		return nil
	},
}

var bgUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Add an image file to the gallery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(false)
		if err != nil {
			return err
		}
		defer e.log.Sync()

		g := e.gallery(cmd.Context())
		if _, err := g.UploadFile(args[0]); err != nil {
			return fmt.Errorf("failed to upload background: %w", err)
		}
		fmt.Printf("Added background %d\n", g.Len())
		return nil
	},
}

var bgSelectCmd = &cobra.Command{
	Use:   "select <index>",
	Short: "Make a background from 'bg list' the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}

		e, err := loadEnv(false)
		if err != nil {
			return err
		}
		defer e.log.Sync()

		g := e.gallery(cmd.Context())
		if err := g.Select(n - 1); err != nil {
			return err
		}
		if err := g.Confirm(); err != nil {
			return fmt.Errorf("failed to save background: %w", err)
		}
		fmt.Printf("Background %d is now active\n", n)
		return nil
	},
}

var bgResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Go back to the plain terminal background",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(false)
		if err != nil {
			return err
		}
		defer e.log.Sync()

		if err := e.gallery(cmd.Context()).Reset(); err != nil {
			return fmt.Errorf("failed to reset background: %w", err)
		}
		fmt.Println("Background reset")
		return nil
	},
}

func init() {
	bgCmd.AddCommand(bgListCmd)
	bgCmd.AddCommand(bgUploadCmd)
	bgCmd.AddCommand(bgSelectCmd)
	bgCmd.AddCommand(bgResetCmd)
}

// describe keeps data URIs from flooding the terminal.
func describe(src string) string {
	if !strings.HasPrefix(src, "data:") {
		return src
	}
	head, body, _ := strings.Cut(src, ",")
	return fmt.Sprintf("%s,... (%d bytes encoded)", head, len(body))
}
