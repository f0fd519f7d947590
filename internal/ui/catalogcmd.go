package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) staffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage the staff roster",
	}
	cmd.AddCommand(a.staffListCmd())
	cmd.AddCommand(a.staffAddCmd())
	cmd.AddCommand(a.staffUpdateCmd())
	cmd.AddCommand(a.staffRemoveCmd())
	return cmd
}

func (a *App) staffListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staff members and the services they perform",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			staff := a.catalog.Staff()
			if len(staff) == 0 {
				fmt.Println("No staff on the roster.")
				return nil
			}
			for _, member := range staff {
				fmt.Printf("%s\n", formatHeader(fmt.Sprintf("#%s %s", member.ID, member.Name)))
				services := a.catalog.ServicesFor(member.ID)
				if len(services) == 0 {
					fmt.Printf("  %s\n", formatMuted("performs no services"))
					continue
				}
				for _, svc := range services {
					PrintServiceRow(svc, "")
				}
			}
			return nil
		},
	}
}

func (a *App) staffAddCmd() *cobra.Command {
	var services string

	cmd := &cobra.Command{
		Use:     "add [name]",
		Short:   "Add a staff member",
		Example: `  esmalte staff add Suzuki --services 1,3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			member, err := a.catalog.AddStaff(context.Background(), args[0], splitIDs(services))
			if err != nil {
				return err
			}
			fmt.Printf("Added staff #%s %s\n", member.ID, member.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&services, "services", "", "comma-separated service ids this member performs")
	return cmd
}

func (a *App) staffUpdateCmd() *cobra.Command {
	var (
		name     string
		services string
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a staff member's name and service set",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			member, err := a.catalog.StaffByID(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = member.Name
			}
			ids := member.ServiceIDs
			if services != "" {
				ids = splitIDs(services)
			}
			if err := a.catalog.UpdateStaff(context.Background(), args[0], name, ids); err != nil {
				return err
			}
			fmt.Printf("Updated staff #%s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&services, "services", "", "comma-separated service ids this member performs")
	return cmd
}

func (a *App) staffRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a staff member from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			member, err := a.catalog.StaffByID(args[0])
			if err != nil {
				return err
			}
			if !promptYesNo(fmt.Sprintf("Remove %s from the roster?", member.Name)) {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := a.catalog.RemoveStaff(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed staff #%s %s\n", member.ID, member.Name)
			return nil
		},
	}
}

func (a *App) menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage the service menu",
	}
	cmd.AddCommand(a.menuListCmd())
	cmd.AddCommand(a.menuAddCmd())
	cmd.AddCommand(a.menuUpdateCmd())
	cmd.AddCommand(a.menuRemoveCmd())
	return cmd
}

func (a *App) menuListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the service menu",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			services := a.catalog.Services()
			if len(services) == 0 {
				fmt.Println("The menu is empty.")
				return nil
			}
			fmt.Printf("%s\n", formatHeader("=== Menu ==="))
			for _, svc := range services {
				staffName := ""
				if member, err := a.catalog.StaffByID(svc.StaffID); err == nil {
					staffName = member.Name
				}
				PrintServiceRow(svc, staffName)
			}
			return nil
		},
	}
}

func (a *App) menuAddCmd() *cobra.Command {
	var (
		duration int
		price    int
		staffID  string
	)

	cmd := &cobra.Command{
		Use:     "add [name]",
		Short:   "Add a menu item",
		Example: `  esmalte menu add "French Tips" --duration 90 --price 6500 --staff 2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if staffID != "" {
				if _, err := a.catalog.StaffByID(staffID); err != nil {
					return err
				}
			}
			svc, err := a.catalog.AddService(context.Background(), args[0], duration, price, staffID)
			if err != nil {
				return err
			}
			fmt.Printf("Added menu item #%s %s\n", svc.ID, svc.Name)
			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 60, "service duration in minutes")
	cmd.Flags().IntVar(&price, "price", 0, "price in yen")
	cmd.Flags().StringVar(&staffID, "staff", "", "id of the staff member primarily responsible")
	return cmd
}

func (a *App) menuUpdateCmd() *cobra.Command {
	var (
		name     string
		duration int
		price    int
		staffID  string
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalog.ServiceByID(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = svc.Name
			}
			if !cmd.Flags().Changed("duration") {
				duration = svc.Duration
			}
			if !cmd.Flags().Changed("price") {
				price = svc.Price
			}
			if !cmd.Flags().Changed("staff") {
				staffID = svc.StaffID
			}
			if err := a.catalog.UpdateService(context.Background(), args[0], name, duration, price, staffID); err != nil {
				return err
			}
			fmt.Printf("Updated menu item #%s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().IntVar(&duration, "duration", 0, "service duration in minutes")
	cmd.Flags().IntVar(&price, "price", 0, "price in yen")
	cmd.Flags().StringVar(&staffID, "staff", "", "id of the staff member primarily responsible")
	return cmd
}

func (a *App) menuRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a menu item and drop it from every staff member's set",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			svc, err := a.catalog.ServiceByID(args[0])
			if err != nil {
				return err
			}
			if !promptYesNo(fmt.Sprintf("Remove %s from the menu?", svc.Name)) {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := a.catalog.RemoveService(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed menu item #%s %s\n", svc.ID, svc.Name)
			return nil
		},
	}
}

// splitIDs parses a comma-separated id list, dropping empty entries.
func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
