// Package main seeds a SQL database with a demo election, its candidates
// and participants, and prints bearer tokens for trying the API locally.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	emodels "votecast/internal/election/models"
	electionstore "votecast/internal/election/store"
	imodels "votecast/internal/identity/models"
	identitystore "votecast/internal/identity/store"
	jwttoken "votecast/internal/jwt_token"
	"votecast/internal/platform/config"
	"votecast/internal/platform/database"
	id "votecast/pkg/domain"
)

type demoCandidate struct {
	name  string
	party string
}

var demoCandidates = []demoCandidate{
	{name: "Ada Okafor", party: "Progress"},
	{name: "Ben Laurent", party: "Unity"},
	{name: "Chen Wei", party: "Independent"},
}

func main() {
	var (
		students = flag.Int("students", 3, "number of verified student participants")
		duration = flag.Duration("duration", 7*24*time.Hour, "how long the demo election stays open")
		title    = flag.String("title", "Student Council 2026", "election title")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *students, *duration, *title); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, students int, duration time.Duration, title string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if cfg.Storage.Driver == "memory" {
		return fmt.Errorf("seeding needs a persistent STORAGE_DRIVER (sqlite, postgres or pgx)")
	}

	dsn := cfg.Storage.DatabaseURL
	if cfg.Storage.Driver == "sqlite" {
		dsn = cfg.Storage.SQLitePath
	}
	db, err := database.Open(ctx, cfg.Storage.Driver, dsn, database.Options{})
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	elections := electionstore.NewSQLStore(db)
	participants := identitystore.NewSQLStore(db)
	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	now := time.Now().UTC()

	election := &emodels.Election{
		ID:          id.NewElectionID(),
		Title:       title,
		Description: "Demo election created by the seed command",
		Status:      emodels.StatusActive,
		StartAt:     now.Add(-time.Minute),
		EndAt:       now.Add(duration),
		CreatedAt:   now,
	}
	if err := elections.CreateElection(ctx, election); err != nil {
		return err
	}
	fmt.Printf("election %s  %q  open until %s\n", election.ID, election.Title, election.EndAt.Format(time.RFC3339))

	for i, c := range demoCandidates {
		candidate := &emodels.Candidate{
			ID:         id.NewCandidateID(),
			ElectionID: election.ID,
			Name:       c.name,
			Party:      c.party,
			Position:   i,
			Status:     emodels.CandidateApproved,
		}
		if err := elections.CreateCandidate(ctx, candidate); err != nil {
			return err
		}
		fmt.Printf("  candidate %s  %s (%s)\n", candidate.ID, c.name, c.party)
	}

	admin, err := imodels.NewParticipant(id.NewParticipantID(), "admin@votecast.local", "Election Officer", imodels.RoleAdmin, true, now)
	if err != nil {
		return err
	}
	seeded := []*imodels.Participant{admin}
	for i := 1; i <= students; i++ {
		p, err := imodels.NewParticipant(id.NewParticipantID(), fmt.Sprintf("student%d@votecast.local", i), "", imodels.RoleStudent, true, now)
		if err != nil {
			return err
		}
		seeded = append(seeded, p)
	}

	fmt.Println("\nparticipants:")
	for _, p := range seeded {
		if err := participants.Save(ctx, p); err != nil {
			return err
		}
		token, err := tokens.GenerateAccessToken(p.ID, string(p.Role), cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}
		fmt.Printf("  %-7s %-26s %s\n  token: %s\n", p.Role, p.Email, p.ID, token)
	}
	return nil
}
