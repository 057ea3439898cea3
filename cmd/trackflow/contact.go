package main

import (
	"context"
	"fmt"

	"github.com/jonathan/trackflow/internal/session"
	"github.com/jonathan/trackflow/internal/types"
	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contacts for tracked jobs",
}

var contactAddCmd = &cobra.Command{
	Use:   "add <jobID> <firstName> <lastName> <companyOrURL>",
	Short: "Add a contact to a job",
	Args:  cobra.ExactArgs(4),
	RunE:  runContactAdd,
}

var contactUpdateCmd = &cobra.Command{
	Use:   "update <contactID>",
	Short: "Attach discovered fields to a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactUpdate,
}

var draftCmd = &cobra.Command{
	Use:   "draft <contactID> <body>",
	Short: "Replace a contact's outreach draft",
	Args:  cobra.ExactArgs(2),
	RunE:  runDraft,
}

var (
	contactEmail  string
	contactRole   string
	contactAvatar string
	draftSubject  string
)

func init() {
	contactUpdateCmd.Flags().StringVar(&contactEmail, "email", "", "Email address")
	contactUpdateCmd.Flags().StringVar(&contactRole, "role", "", "Role at the company")
	contactUpdateCmd.Flags().StringVar(&contactAvatar, "avatar", "", "Avatar URL")
	draftCmd.Flags().StringVar(&draftSubject, "subject", "", "Draft subject line")

	contactCmd.AddCommand(contactAddCmd)
	contactCmd.AddCommand(contactUpdateCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(draftCmd)
}

func runContactAdd(_ *cobra.Command, args []string) error {
	req := types.AddContactRequest{
		JobID:            args[0],
		FirstName:        args[1],
		LastName:         args[2],
		CompanyNameOrURL: args[3],
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid contact: %w", err)
	}

	return withSession(func(ctx context.Context, sess *session.Session) error {
		contact, ok := sess.Flow().AddContact(ctx, req.JobID, req.FirstName, req.LastName, req.CompanyNameOrURL)
		if !ok {
			return fmt.Errorf("contact rejected: all of first name, last name, and company are required")
		}
		fmt.Printf("added %s %s (%s)\n", contact.FirstName, contact.LastName, contact.ID)
		return nil
	})
}

func runContactUpdate(_ *cobra.Command, args []string) error {
	upd := types.ContactUpdate{}
	if contactEmail != "" {
		upd.Email = &contactEmail
	}
	if contactRole != "" {
		upd.Role = &contactRole
	}
	if contactAvatar != "" {
		upd.Avatar = &contactAvatar
	}

	return withSession(func(ctx context.Context, sess *session.Session) error {
		if !sess.Flow().UpdateContact(ctx, args[0], upd) {
			return fmt.Errorf("no contact with id %s", args[0])
		}
		fmt.Printf("updated %s\n", args[0])
		return nil
	})
}

func runDraft(_ *cobra.Command, args []string) error {
	req := types.SetDraftRequest{ContactID: args[0], Subject: draftSubject, Body: args[1]}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid draft: %w", err)
	}

	return withSession(func(ctx context.Context, sess *session.Session) error {
		if !sess.Flow().SetDraft(ctx, req.ContactID, types.OutreachDraft{Subject: req.Subject, Body: req.Body}) {
			return fmt.Errorf("no contact with id %s", req.ContactID)
		}
		fmt.Printf("draft stored for %s\n", req.ContactID)
		return nil
	})
}
