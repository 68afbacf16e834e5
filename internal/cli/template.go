package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pandey-solutions/saves/internal/config"
	"github.com/pandey-solutions/saves/internal/domain/view"
	"github.com/pandey-solutions/saves/internal/providers"
	"github.com/pandey-solutions/saves/internal/setup"
	"github.com/pandey-solutions/saves/pkg/client"
)

func newTemplateCmd() *cobra.Command {
	var (
		method     string
		externalID string
		outFile    string
		steps      bool
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print the IAM role template or CloudShell script",
		Long: `Renders the CloudFormation template that creates the read-only Saves role.
With --method cli the CloudShell script is printed instead; it needs the
external id of your session (from 'saves session' or --external-id).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts := setup.OptionsFromConfig(cfg.Setup)

			if externalID == "" {
				externalID, _ = newConfigStore().Get(client.KeyExternalID)
			}

			if steps {
				in, err := setup.BuildInstructions(opts, view.Method(method), externalID)
				if err != nil {
					return err
				}
				return printInstructions(in)
			}

			var body []byte
			switch view.Method(method) {
			case view.MethodCloudFormation:
				body, err = setup.RenderTemplate(opts)
			case view.MethodCLI:
				if externalID == "" {
					return fmt.Errorf("no external id: run 'saves session' first or pass --external-id")
				}
				var script string
				script, err = setup.Script(opts, externalID)
				body = []byte(script + "\n")
			default:
				return fmt.Errorf("unknown method %q (use cloudformation or cli)", method)
			}
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, body, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outFile, err)
				}
				fmt.Fprintf(stdout, "Wrote %s\n", outFile)
				return nil
			}
			_, err = stdout.Write(body)
			return err
		},
	}

	cmd.Flags().StringVar(&method, "method", string(view.MethodCloudFormation), "provisioning method: cloudformation or cli")
	cmd.Flags().StringVar(&externalID, "external-id", "", "external id (default: stored session)")
	cmd.Flags().StringVarP(&outFile, "file", "f", "", "write to file instead of stdout (e.g. "+setup.TemplateFilename+")")
	cmd.Flags().BoolVar(&steps, "steps", false, "print the setup steps instead of the artefact")

	cmd.AddCommand(newTemplatePublishCmd())

	return cmd
}

func newTemplatePublishCmd() *cobra.Command {
	var bucket, key, region string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the template to S3 for the console launch link",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if bucket == "" {
				bucket = cfg.AWS.TemplateBucket
			}
			if key == "" {
				key = cfg.AWS.TemplateKey
			}
			if region == "" {
				region = cfg.AWS.Region
			}

			body, err := setup.RenderTemplate(setup.OptionsFromConfig(cfg.Setup))
			if err != nil {
				return err
			}

			ctx := context.Background()
			publisher, err := providers.NewTemplatePublisher(ctx, providers.AWSCredentials{Region: region})
			if err != nil {
				return err
			}

			url, err := publisher.Publish(ctx, bucket, key, body)
			if err != nil {
				return err
			}

			fmt.Fprintf(stdout, "[+] Published %s\n", url)
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default: SAVES_TEMPLATE_BUCKET)")
	cmd.Flags().StringVar(&key, "key", "", "object key (default: SAVES_TEMPLATE_KEY)")
	cmd.Flags().StringVar(&region, "region", "", "bucket region (default: AWS_REGION)")

	return cmd
}

func printInstructions(in *setup.Instructions) error {
	if structuredOutput() {
		return printOutput(in)
	}

	fmt.Fprintln(stdout, in.Summary)
	fmt.Fprintln(stdout)
	for i, s := range in.Steps {
		fmt.Fprintf(stdout, "%d. %s\n", i+1, s)
	}
	fmt.Fprintf(stdout, "\nOpen: %s\n%s\n", in.LaunchURL, in.ArnHint)

	fmt.Fprintln(stdout, "\nWhy is this safe?")
	for _, n := range in.Safety {
		fmt.Fprintf(stdout, "  - %s: %s\n", n.Title, n.Body)
	}
	return nil
}
