package main

import (
	"io"

	"github.com/germanamz/multiquery/pkg/providers/gemini"
	"github.com/germanamz/multiquery/pkg/providers/openai"
	"github.com/germanamz/multiquery/pkg/query"
	"github.com/germanamz/multiquery/pkg/render"
	"github.com/spf13/cobra"
)

// options holds the parsed command line.
type options struct {
	check       bool
	model       string
	prompt      string
	role        string
	geminiModel string
	openaiModel string

	configPath  string
	envFile     string
	format      string
	verbose     bool
	metricsFile string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:           "multiquery",
		Short:         "Query external AI models",
		Long:          "Send a prompt to Gemini or OpenAI and print {model, available, response|error} as JSON.\n\nAPI keys are read from GOOGLE_AI_KEY and OPENAI_API_KEY.",
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, stdout, stderr)
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	f := cmd.Flags()
	f.BoolVar(&o.check, "check", false, "check API key availability")
	f.StringVar(&o.model, "model", "", "which model to query ("+query.Gemini+" or "+query.OpenAI+")")
	f.StringVar(&o.prompt, "prompt", "", "the prompt to send")
	f.StringVar(&o.role, "role", "", "system/role prompt (optional)")
	f.StringVar(&o.geminiModel, "gemini-model", gemini.DefaultModel, "Gemini model ID")
	f.StringVar(&o.openaiModel, "openai-model", openai.DefaultModel, "OpenAI model ID")

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "path to a YAML configuration file (optional)")
	pf.StringVar(&o.envFile, "env", ".env", "path to .env file (ignored if missing)")
	pf.StringVar(&o.format, "format", string(render.JSON), "output format: json or markdown")
	pf.BoolVar(&o.verbose, "verbose", false, "log debug output to stderr")
	pf.StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the query")

	cmd.AddCommand(newMCPCmd(o, stdin, stdout, stderr))

	return cmd
}

func (o *options) run(cmd *cobra.Command, stdout, stderr io.Writer) error {
	format, err := render.ParseFormat(o.format)
	if err != nil {
		return &usageError{err: err}
	}

	if !o.check {
		if err := o.validateQuery(); err != nil {
			return err
		}
	}

	env, err := o.setup(stderr)
	if err != nil {
		return err
	}

	if o.check {
		return render.Check(stdout, format, env.client.Check())
	}

	req := query.Request{
		Prompt: o.prompt,
		Role:   o.role,
		Model:  o.modelOverride(cmd),
	}

	res := env.client.Query(cmd.Context(), o.model, req)

	if err := render.Result(stdout, format, res); err != nil {
		return err
	}

	return env.flushMetrics()
}

func (o *options) validateQuery() error {
	if o.model == "" || o.prompt == "" {
		return usagef("--model and --prompt are required (unless using --check)")
	}

	if o.model != query.Gemini && o.model != query.OpenAI {
		return usagef("invalid --model %q (choose from %s, %s)", o.model, query.Gemini, query.OpenAI)
	}

	return nil
}

// modelOverride returns the model id flag for the selected provider when the
// user set it explicitly. Otherwise it returns "" so the configured or
// built-in default applies.
func (o *options) modelOverride(cmd *cobra.Command) string {
	name, value := "gemini-model", o.geminiModel
	if o.model == query.OpenAI {
		name, value = "openai-model", o.openaiModel
	}

	if cmd.Flags().Changed(name) {
		return value
	}

	return ""
}
