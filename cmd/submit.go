package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/quantum-job-console/internal/console"
	"github.com/JakeFAU/quantum-job-console/internal/render"
)

// apiKeyEnv supplies the key when --api-key is not given. It may come from the
// env file.
const apiKeyEnv = "QJOBS_API_KEY"

var errNotSubmitted = errors.New("job not submitted")

type submitOptions struct {
	apiKey      string
	jobType     string
	payload     string
	payloadFile string
}

func newSubmitCmd() *cobra.Command {
	opts := &submitOptions{}
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a job and refresh the job list",
		Long: `Validates the payload as JSON, posts it to /submit-job with the API key,
prints the server's reply and then the refreshed job list. Malformed JSON is
rejected locally and never sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("api-key") {
				opts.apiKey = os.Getenv(apiKeyEnv)
			}
			payload, err := opts.readPayload(cmd.InOrStdin())
			if err != nil {
				return err
			}

			form := console.Form{APIKey: opts.apiKey, JobType: opts.jobType, Payload: payload}
			st := appInstance.GetConsole().Submit(cmd.Context(), console.State{}, form)

			out := render.NewText(cmd.OutOrStdout(), appInstance.GetConfig().Preview.MaxLength)
			if err := out.Submission(*st.Submission); err != nil {
				return err
			}
			if !st.Submission.Submitted() {
				return errNotSubmitted
			}
			if st.Refreshed {
				return out.Jobs(st.Jobs)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "API key sent as X-API-Key (default $"+apiKeyEnv+")")
	cmd.Flags().StringVar(&opts.jobType, "type", render.DefaultJobType, "job type")
	cmd.Flags().StringVar(&opts.payload, "payload", render.DefaultPayload, "job payload as JSON text")
	cmd.Flags().StringVar(&opts.payloadFile, "payload-file", "", "read the payload from a file ('-' for stdin)")
	cmd.MarkFlagsMutuallyExclusive("payload", "payload-file")
	return cmd
}

func (o *submitOptions) readPayload(stdin io.Reader) (string, error) {
	switch o.payloadFile {
	case "":
		return o.payload, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read payload from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(o.payloadFile)
		if err != nil {
			return "", fmt.Errorf("read payload file: %w", err)
		}
		return string(data), nil
	}
}
