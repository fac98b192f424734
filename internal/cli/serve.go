package cli

import (
	"github.com/spf13/cobra"

	"github.com/auspexlabs/imager/internal/api"
)

// defaultAddr is the listen address used when --addr is not given.
const defaultAddr = ":8080"

// newServeCmd creates the serve command that runs the HTTP chart service.
// The server shuts down gracefully when the process receives an interrupt.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP chart generation service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			srv := api.NewServer(addr, logger)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}
