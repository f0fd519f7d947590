package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/esmalte/internal/salon"
)

func (a *App) bookCmd() *cobra.Command {
	var (
		date      string
		slotTime  string
		staffID   string
		serviceID string
		name      string
		phone     string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		Long: `Book an appointment for a customer.

The staff member must offer the chosen service, and enough consecutive
slots must be open to fit its duration.`,
		Example: `  esmalte book --date=tomorrow --time=10:00 --staff=1 --service=2 \
    --name="Aiko Watanabe" --phone=090-1234-5678`,
		RunE: func(_ *cobra.Command, _ []string) error {
			resolved, err := a.resolveDate(date)
			if err != nil {
				return err
			}

			staff, err := a.catalog.StaffByID(staffID)
			if err != nil {
				return err
			}
			svc, err := a.catalog.ServiceByID(serviceID)
			if err != nil {
				return err
			}
			if !offers(staff, svc.ID) {
				return fmt.Errorf("%s does not offer %s", staff.Name, svc.Name)
			}

			customer := salon.Customer{
				Name:    name,
				Phone:   phone,
				Service: svc,
				Staff:   staff,
			}

			res, err := a.engine.Book(context.Background(), resolved, slotTime, customer)
			if err != nil {
				return err
			}

			fmt.Printf("Booked #%s: %s, %s %s\n", res.ID, res.Customer.Name, res.Date, res.Time)
			fmt.Printf("  %s with %s, %s, %s\n",
				svc.Name,
				staff.Name,
				salon.FormatDuration(svc.Duration),
				formatPrice(salon.FormatPrice(svc.Price)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Appointment date (YYYY-MM-DD or a keyword counted from the window's first day, default: today)")
	cmd.Flags().StringVar(&slotTime, "time", "", "Start time (HH:00, required)")
	cmd.Flags().StringVar(&staffID, "staff", "", "Staff member id (required)")
	cmd.Flags().StringVar(&serviceID, "service", "", "Service id (required)")
	cmd.Flags().StringVar(&name, "name", "", "Customer name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Customer phone (required)")

	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("staff")
	_ = cmd.MarkFlagRequired("service")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

// offers reports whether the staff member performs the given service.
func offers(staff salon.Staff, serviceID string) bool {
	for _, id := range staff.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
