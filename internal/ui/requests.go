package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/esmalte/internal/salon"
)

func (a *App) requestCmd() *cobra.Command {
	var (
		name      string
		phone     string
		staffID   string
		serviceID string
		prefDate  string
		prefTime  string
		message   string
	)

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Submit a customer time request",
		Long: `Submit an out-of-band time request for a customer whose preferred
time is not on the grid. An administrator follows up by phone.`,
		Example: `  esmalte request --name="Aiko Watanabe" --phone=090-1234-5678 \
    --staff=1 --service=2 --message="Evenings after 19:00 work best"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			staff, err := a.catalog.StaffByID(staffID)
			if err != nil {
				return err
			}

			req := salon.TimeRequest{
				CustomerName:  name,
				CustomerPhone: phone,
				Staff:         staff,
				PreferredDate: prefDate,
				PreferredTime: prefTime,
				Message:       message,
			}
			if serviceID != "" {
				svc, err := a.catalog.ServiceByID(serviceID)
				if err != nil {
					return err
				}
				req.Service = svc
			}

			created, err := a.engine.SubmitRequest(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Printf("Submitted time request #%s for %s. The salon will call %s.\n",
				created.ID, created.CustomerName, created.CustomerPhone)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Customer name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Customer phone (required)")
	cmd.Flags().StringVar(&staffID, "staff", "", "Requested staff member id (required)")
	cmd.Flags().StringVar(&serviceID, "service", "", "Requested service id")
	cmd.Flags().StringVar(&prefDate, "date", "", "Preferred date, free-form")
	cmd.Flags().StringVar(&prefTime, "time", "", "Preferred time, free-form")
	cmd.Flags().StringVar(&message, "message", "", "The customer's request (required)")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("staff")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func (a *App) requestsCmd() *cobra.Command {
	var (
		status string
		notes  string
		update string
	)

	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List and manage time requests",
		Long: `List customer time requests, or move one through its lifecycle with
--update. Valid statuses: pending, contacted, scheduled, declined.`,
		Example: `  esmalte requests
  esmalte requests --update=1757240000000 --status=contacted --notes="called, waiting"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if update != "" {
				if status == "" {
					return fmt.Errorf("--status is required with --update")
				}
				err := a.engine.UpdateRequestStatus(context.Background(), update, salon.RequestStatus(status), notes)
				if err != nil {
					return err
				}
				fmt.Printf("Request #%s is now %s.\n", update, status)
				return nil
			}

			requests := a.engine.Requests()
			if len(requests) == 0 {
				fmt.Println("No time requests.")
				return nil
			}
			for _, r := range requests {
				PrintRequestRow(r)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&update, "update", "", "Request id to update")
	cmd.Flags().StringVar(&status, "status", "", "New status for --update")
	cmd.Flags().StringVar(&notes, "notes", "", "Admin notes for --update")

	return cmd
}
