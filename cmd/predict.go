package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/trajectory-cli/internal/adapters/render/results"
	"github.com/bnema/trajectory-cli/internal/application"
	"github.com/bnema/trajectory-cli/internal/domain"
	"github.com/spf13/cobra"
)

type predictOptions struct {
	assignments []string
	profilePath string
	topN        int
	asJSON      bool
}

type predictOutput struct {
	SessionID  domain.SessionID           `json:"session_id"`
	Name       string                     `json:"name"`
	RequestID  string                     `json:"request_id"`
	Traits     domain.TraitVector         `json:"traits"`
	Result     *domain.PredictionResult   `json:"result"`
	Rankings   []application.RankingRow   `json:"rankings"`
	Influences []application.InfluenceRow `json:"influences"`
}

func newPredictCmd(app *app) *cobra.Command {
	opts := predictOptions{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Submit one trait profile and print the predicted trajectory",
		Example: `  trj predict --set likes_coding=yes --set math_score=85
  trj predict --profile ~/profiles/analyst.toml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredict(cmd, app, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.assignments, "set", nil, "Trait assignment name=value (repeatable)")
	cmd.Flags().StringVar(&opts.profilePath, "profile", "", "Trait profile TOML file to start from")
	cmd.Flags().IntVar(&opts.topN, "top", application.DefaultTopN, "Number of ranked careers to show")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")

	return cmd
}

func runPredict(cmd *cobra.Command, app *app, opts predictOptions) error {
	update, profileName, err := collectTraitUpdate(opts.profilePath, opts.assignments)
	if err != nil {
		return err
	}

	store := app.newSessionStore()
	if _, err := store.UpdateActiveTraitVector(update); err != nil {
		return err
	}

	id, ok := store.ActiveID()
	if !ok {
		return domain.ErrNoActiveSession
	}
	if profileName != "" {
		if err := store.RenameSession(id, profileName); err != nil {
			return err
		}
	}

	done, err := app.newCoordinator(store).Submit(cmd.Context(), id)
	if err != nil {
		return err
	}

	var completion application.Completion
	wait := func(ctx context.Context) error {
		select {
		case completion = <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if opts.asJSON {
		err = wait(cmd.Context())
	} else {
		err = runWaitSpinner(cmd.Context(), cmd.ErrOrStderr(), "Predicting trajectory...", app.clock.Now, wait)
	}
	if err != nil {
		return err
	}
	if completion.Err != nil {
		return completion.Err
	}

	session, err := store.Get(id)
	if err != nil {
		return err
	}
	projection := application.Project(session.Results, opts.topN)

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(predictOutput{
			SessionID:  session.ID,
			Name:       session.Name,
			RequestID:  completion.RequestID,
			Traits:     session.Traits,
			Result:     session.Results,
			Rankings:   projection.Rankings,
			Influences: projection.Influences,
		})
	}

	rendered, err := app.renderSession(results.SessionView{
		Session:    session,
		Projection: projection,
		Now:        app.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("render prediction: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
