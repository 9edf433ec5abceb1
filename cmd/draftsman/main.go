package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/draftsman/pkg/normalize"
	"github.com/coolbeans/draftsman/pkg/refdata"
	"github.com/coolbeans/draftsman/pkg/section"
	"github.com/coolbeans/draftsman/pkg/template"
	"github.com/coolbeans/draftsman/pkg/variables"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "draftsman",
		Short: "Court filing template engine",
		Long: `Draftsman assembles court filings from reusable templates whose prose
contains merge fields, and ingests existing filings to recover their
logical structure.

It provides:
  - Section detection over flat legal prose
  - Merge-field extraction, substitution, and condition evaluation
  - Effective-dated officeholder resolution and facility cascades
  - Template rendering with conditional sections`,
		Version: version,
	}

	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(sectionsCmd())
	rootCmd.AddCommand(variablesCmd())
	rootCmd.AddCommand(cascadeCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(templatesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a filing and recover its structure as a template",
		Long: `Import normalizes a filing for its source format, detects sections,
and writes the result as an editable template.

Example:
  draftsman import --source petition.txt --kind pagetext --name "Habeas Petition"
  draftsman import --source brief.md --kind markdown --output brief.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			kind, _ := cmd.Flags().GetString("kind")
			name, _ := cmd.Flags().GetString("name")
			output, _ := cmd.Flags().GetString("output")
			asJSON, _ := cmd.Flags().GetBool("json")

			raw, err := readSource(source)
			if err != nil {
				return err
			}

			t, err := template.Import(raw, normalize.SourceKind(kind), name)
			if err != nil {
				return fmt.Errorf("failed to import: %w", err)
			}

			if len(t.Sections) == 0 {
				fmt.Fprintln(os.Stderr, "warning: no headings detected; document needs manual sectioning")
			}

			data, err := marshalTemplate(t, asJSON)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Printf("Imported %d sections, %d variables -> %s\n",
				len(t.Sections), len(t.Variables), output)
			return nil
		},
	}

	cmd.Flags().String("source", "", "source file (required)")
	cmd.Flags().String("kind", "plain", "source kind: plain, markdown, html, pagetext")
	cmd.Flags().String("name", "", "template name")
	cmd.Flags().String("output", "", "output file (default: stdout)")
	cmd.Flags().Bool("json", false, "emit JSON instead of YAML")
	return cmd
}

func sectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Detect and list sections in a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			kind, _ := cmd.Flags().GetString("kind")

			raw, err := readSource(source)
			if err != nil {
				return err
			}

			result, err := normalize.Normalize(raw, normalize.SourceKind(kind))
			if err != nil {
				return fmt.Errorf("failed to normalize: %w", err)
			}

			sections := section.Detect(result.Text)
			if len(sections) == 0 {
				fmt.Println("No sections detected.")
				return nil
			}

			for i, sec := range sections {
				name := strings.ReplaceAll(sec.Name, "\n", " / ")
				fmt.Printf("%2d. %s (%d paragraphs)\n", i+1, name, sec.ParaCount)
			}
			return nil
		},
	}

	cmd.Flags().String("source", "", "source file (required)")
	cmd.Flags().String("kind", "plain", "source kind: plain, markdown, html, pagetext")
	return cmd
}

func variablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variables",
		Short: "List merge fields referenced in a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")

			raw, err := readSource(source)
			if err != nil {
				return err
			}

			names := variables.Extract(raw)
			if len(names) == 0 {
				fmt.Println("No merge fields found.")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().String("source", "", "source file (required)")
	return cmd
}

func cascadeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cascade",
		Short: "Derive merge variables from a facility selection",
		Long: `Cascade looks up a facility in a reference-data file, resolves its
field office, current warden, suggested courts, and the national
officials in effect, and prints the resulting variable set.

Example:
  draftsman cascade --refdata refdata.yaml --facility caroline-dc --as-of 2024-06-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			refdataPath, _ := cmd.Flags().GetString("refdata")
			facilityID, _ := cmd.Flags().GetString("facility")
			asOf, _ := cmd.Flags().GetString("as-of")
			asJSON, _ := cmd.Flags().GetBool("json")

			if refdataPath == "" {
				return fmt.Errorf("--refdata flag is required")
			}
			if facilityID == "" {
				return fmt.Errorf("--facility flag is required")
			}

			data, err := os.ReadFile(refdataPath)
			if err != nil {
				return fmt.Errorf("failed to read reference data: %w", err)
			}
			var refs refdata.RefSets
			if err := yaml.Unmarshal(data, &refs); err != nil {
				return fmt.Errorf("failed to parse reference data: %w", err)
			}

			cascade := refdata.BuildCascade(facilityID, refs, asOf)
			if cascade.Facility == nil {
				fmt.Fprintf(os.Stderr, "warning: facility %q not found\n", facilityID)
			}

			if asJSON {
				out, err := json.MarshalIndent(cascade, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode cascade: %w", err)
				}
				fmt.Println(string(out))
				return nil
			}

			keys := make([]string, 0, len(cascade.Variables))
			for key := range cascade.Variables {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Printf("%s: %s\n", key, cascade.Variables[key])
			}
			return nil
		},
	}

	cmd.Flags().String("refdata", "", "reference data YAML file (required)")
	cmd.Flags().String("facility", "", "facility ID (required)")
	cmd.Flags().String("as-of", "", "evaluation date (YYYY-MM-DD, default: today)")
	cmd.Flags().Bool("json", false, "emit the full cascade as JSON")
	return cmd
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template with a variable set",
		Long: `Render substitutes a variable set into a template and prints the
composed prose. Values files may be a flat mapping or a two-layer
case/override mapping; overrides win.

Example:
  draftsman render --template petition.yaml --values case.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			templatePath, _ := cmd.Flags().GetString("template")
			valuesPath, _ := cmd.Flags().GetString("values")
			noNames, _ := cmd.Flags().GetBool("no-names")

			if templatePath == "" {
				return fmt.Errorf("--template flag is required")
			}

			data, err := os.ReadFile(templatePath)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}
			var t template.Template
			if err := yaml.Unmarshal(data, &t); err != nil {
				return fmt.Errorf("failed to parse template: %w", err)
			}

			values := map[string]string{}
			if valuesPath != "" {
				values, err = readValues(valuesPath)
				if err != nil {
					return err
				}
			}

			layout := template.DefaultLayout()
			layout.IncludeNames = !noNames
			fmt.Println(template.Render(&t, values, layout))
			return nil
		},
	}

	cmd.Flags().String("template", "", "template YAML file (required)")
	cmd.Flags().String("values", "", "variable values YAML file")
	cmd.Flags().Bool("no-names", false, "omit section names from output")
	return cmd
}

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage a directory of templates",
	}
	cmd.AddCommand(templatesListCmd())
	cmd.AddCommand(templatesForkCmd())
	return cmd
}

func templatesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates in a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			registry, err := template.NewRegistryWithDirectory(dir)
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}

			list := registry.List()
			if len(list) == 0 {
				fmt.Println("No templates found.")
				return nil
			}
			for _, t := range list {
				marker := " "
				if t.Default {
					marker = "*"
				}
				fmt.Printf("%s %s  %s (%d sections, %d variables)\n",
					marker, t.ID, t.Name, len(t.Sections), len(t.Variables))
			}
			return nil
		},
	}

	cmd.Flags().String("dir", "templates", "template directory")
	return cmd
}

func templatesForkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fork",
		Short: "Fork a template into a new file",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			id, _ := cmd.Flags().GetString("id")
			output, _ := cmd.Flags().GetString("output")

			if id == "" {
				return fmt.Errorf("--id flag is required")
			}

			registry, err := template.NewRegistryWithDirectory(dir)
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}

			fork, err := registry.Fork(id)
			if err != nil {
				return fmt.Errorf("failed to fork: %w", err)
			}

			if output == "" {
				output = fork.ID + ".yaml"
			}
			if err := registry.SaveFile(fork, output); err != nil {
				return fmt.Errorf("failed to save fork: %w", err)
			}
			fmt.Printf("Forked %s -> %s (%s)\n", id, fork.ID, output)
			return nil
		},
	}

	cmd.Flags().String("dir", "templates", "template directory")
	cmd.Flags().String("id", "", "template ID to fork (required)")
	cmd.Flags().String("output", "", "output file (default: <new-id>.yaml)")
	return cmd
}

// readSource reads the file behind --source, insisting the flag is set.
func readSource(source string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("--source flag is required")
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(data), nil
}

// readValues loads a values file. Both a flat name->value mapping and a
// layered case/override document are accepted; overrides win.
func readValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}

	var layered variables.ValueSet
	if err := yaml.Unmarshal(data, &layered); err == nil {
		if len(layered.Case) > 0 || len(layered.Override) > 0 {
			return layered.Merged(), nil
		}
	}

	flat := map[string]string{}
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("failed to parse values: %w", err)
	}
	return flat, nil
}

func marshalTemplate(t *template.Template, asJSON bool) ([]byte, error) {
	if asJSON {
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode template: %w", err)
		}
		return append(data, '\n'), nil
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return data, nil
}
