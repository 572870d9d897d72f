package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"printfolio/internal/form"
	"printfolio/internal/model"
)

var (
	errSubmitBlocked = errors.New("request has invalid fields")
	errSubmitFailed  = errors.New(form.SubmitFailedMessage)
)

// 确认后的提示
var nextSteps = []string{
	"We'll review your request within 24-48 hours",
	"You'll receive an email with a quote and timeline",
	"Once approved, we'll start printing your custom design",
}

func newSubmitCmd(a *app) *cobra.Command {
	values := map[string]*string{}
	var image string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a custom print request non-interactively",
		Example: `  printreq submit --title "Custom Dragon Miniature" \
    --description "Please make it 15cm tall in red PLA" \
    --name "Jane Doe" --email jane@example.com --image ./dragon.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl := a.newForm()
			for field, v := range values {
				if err := ctrl.Set(field, *v); err != nil {
					return err
				}
			}
			if image != "" {
				if err := ctrl.AttachImage(image); err != nil {
					if msg := ctrl.FieldError(model.FieldReferenceImage); msg != "" {
						printFieldErrors(cmd.ErrOrStderr(), ctrl)
						return errSubmitBlocked
					}
					return fmt.Errorf("读取参考图片失败: %w", err)
				}
			}

			switch ctrl.Submit(cmd.Context(), a.client) {
			case form.OutcomeBlocked:
				printFieldErrors(cmd.ErrOrStderr(), ctrl)
				return errSubmitBlocked
			case form.OutcomeFailed:
				fmt.Fprintln(cmd.ErrOrStderr(), ctrl.SubmitError())
				return errSubmitFailed
			case form.OutcomeConfirmed:
				printConfirmation(cmd.OutOrStdout(), ctrl.Value(model.FieldTitle))
				return nil
			}
			return errSubmitFailed
		},
	}

	flags := cmd.Flags()
	values[model.FieldTitle] = flags.String("title", "", "print title")
	values[model.FieldDescription] = flags.String("description", "", "what should be printed (size, material, color...)")
	values[model.FieldName] = flags.String("name", "", "your name")
	values[model.FieldEmail] = flags.String("email", "", "your email address")
	flags.StringVar(&image, "image", "", "optional reference image (JPG, PNG or GIF)")
	return cmd
}

func printFieldErrors(w io.Writer, ctrl *form.Controller) {
	for _, fe := range ctrl.Errors() {
		fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
	}
}

func printConfirmation(w io.Writer, title string) {
	fmt.Fprintf(w, "✓ Request submitted successfully: %s\n\nWhat happens next?\n", title)
	for _, step := range nextSteps {
		fmt.Fprintf(w, "  • %s\n", step)
	}
}
