package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/marketplace-client/internal/catalog"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

func reportCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "report",
		Short: "Report install outcomes to the marketplace",
		Long: "Reports are best-effort: delivery failures are logged at debug\n" +
			"level and never fail the command.",
	}

	root.AddCommand(reportSuccessCmd(), reportErrorCmd())

	return root
}

func reportSuccessCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "success <node-id|url>",
		Short:   "Report a successful install",
		Example: `  mpc report success 1139`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			node := nodeQuery(args[0])
			if node.URL == "" {
				if node, err = c.catalog.Node(ctx, node); err != nil {
					return err
				}
			}
			c.catalog.ReportInstallSuccess(ctx, node)
			return nil
		},
	}
}

func reportErrorCmd() *cobra.Command {
	var (
		severity string
		message  string
		ius      []string
		details  string
	)

	cmd := &cobra.Command{
		Use:   "error <node-id>...",
		Short: "Report a failed install",
		Example: `  mpc report error 1139 --message "resolution failed" --iu org.eclipse.mylyn_feature
  mpc report error 1139 1140 --severity cancel`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sev, err := parseSeverity(severity)
			if err != nil {
				return err
			}

			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			nodes := make([]domain.Node, 0, len(args))
			for _, id := range args {
				nodes = append(nodes, domain.Node{ID: id})
			}
			c.catalog.ReportInstallError(ctx,
				domain.InstallStatus{Severity: sev, Message: message},
				nodes, ius, details,
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&severity, "severity", "error", "severity (ok, info, warning, error, cancel)")
	cmd.Flags().StringVar(&message, "message", "", "status message")
	cmd.Flags().StringSliceVar(&ius, "iu", nil, "installable unit ids involved")
	cmd.Flags().StringVar(&details, "details", "", "detailed message")

	return cmd
}

func parseSeverity(s string) (domain.Severity, error) {
	switch strings.ToLower(s) {
	case "ok":
		return domain.SeverityOK, nil
	case "info":
		return domain.SeverityInfo, nil
	case "warning", "warn":
		return domain.SeverityWarning, nil
	case "error":
		return domain.SeverityError, nil
	case "cancel":
		return domain.SeverityCancel, nil
	default:
		return 0, fmt.Errorf("%w: unknown severity %q", catalog.ErrInvalidArgument, s)
	}
}
