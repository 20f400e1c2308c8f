package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "edupath",
		Short: "EduPath student portal",
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the edupath service version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE:  migrate,
	}

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage portal accounts",
	}

	userAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Create a trainee, staff or admin account",
		RunE:  addUser,
	}

	cfgFile string
	version string

	userEmail    string
	userPassword string
	userRole     string
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file (optional)")

	userAddCmd.Flags().StringVar(&userEmail, "email", "", "account email")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "account password")
	userAddCmd.Flags().StringVar(&userRole, "role", "admin", "trainee, staff or admin")
	_ = userAddCmd.MarkFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userAddCmd)

	rootCmd.AddCommand(versionCmd, migrateCmd, userCmd)
	if err := rootCmd.Execute(); err != nil {
		slog.Default().Error("can't start the service", slog.String("err", err.Error()))
		os.Exit(-1)
	}
}
