package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/datasettag/internal/session"
	"github.com/ivlev/datasettag/internal/tags"
)

type saveOptions struct {
	Trigger string
	Tags    []string
	Replace bool
}

func newSaveCmd(a *app) *cobra.Command {
	opts := &saveOptions{}
	cmd := &cobra.Command{
		Use:   "save <image>",
		Short: "Tag one image and write its caption file and manifest entry",
		Long: `Tag one image and write its caption file and manifest entry.

Tags given with --tag are added to the tags already stored for the image,
and the stored trigger word is kept unless --trigger is set. Adding a tag
that is already stored fails; use --replace to start from an empty set.`,
		Example: `  datasettag save data/img_001.png --trigger mytok \
    --tag Type=photo --tag Subject=girl --tag "Lighting=soft light"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := session.New(a.buildCatalog(), a.logger)
			if err := sess.Select(args[0]); err != nil {
				return err
			}
			if opts.Replace {
				sess.Clear()
			}
			if cmd.Flags().Changed("trigger") {
				sess.SetTrigger(opts.Trigger)
			}
			for _, value := range opts.Tags {
				c, text, err := parseTagFlag(value)
				if err != nil {
					return err
				}
				if err := sess.Add(c, text); err != nil {
					if errors.Is(err, tags.ErrDuplicateTag) && !opts.Replace {
						return fmt.Errorf("%w (stored tags are kept, use --replace to start over)", err)
					}
					return err
				}
			}

			res, err := sess.Save()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[+] %s\n", res.CaptionPath)
			fmt.Fprintf(out, "[+] %s\n", res.ManifestPath)
			fmt.Fprintln(out, res.Caption)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Trigger, "trigger", "t", "", "Trigger word")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Tag as Category=text, repeatable")
	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "Drop the stored tags and trigger word before adding")
	return cmd
}

// parseTagFlag splits a Category=text flag value.
func parseTagFlag(value string) (tags.Category, string, error) {
	name, text, ok := strings.Cut(value, "=")
	if !ok {
		return 0, "", fmt.Errorf("tag %q: expected Category=text", value)
	}
	c, err := tags.ParseFold(name)
	if err != nil {
		return 0, "", err
	}
	return c, text, nil
}
