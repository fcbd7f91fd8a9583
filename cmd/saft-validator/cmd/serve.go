package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/saft-validator/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for validating audit files.

The API provides endpoints for:
  - POST /api/v1/validate - Validate an audit file
  - POST /api/v1/verify   - Verify the signature chain
  - POST /api/v1/info     - Show file information
  - GET  /health          - Health check

Examples:
  # Start server on default port
  saft-validator serve

  # Start on custom port with a public key
  saft-validator serve --address :8080 --public-key key.pem

  # Start in debug mode
  saft-validator serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := validationConfig()
	if err != nil {
		return err
	}

	config := &server.Config{
		Address:       serverAddr,
		PublicKeyPath: publicKeyPath,
		Validation:    cfg,
		ReadTimeout:   readTimeout,
		WriteTimeout:  writeTimeout,
		Debug:         serverDebug,
	}

	srv, err := server.NewServer(config)
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	if publicKeyPath != "" {
		fmt.Println("Signature verification enabled")
	} else {
		fmt.Println("Signature verification disabled (no public key)")
	}

	return srv.Run()
}
