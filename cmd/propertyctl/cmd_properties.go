package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"propertyhub/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// propertyFlags are the editable fields shared by create and update
type propertyFlags struct {
	title        string
	price        string
	location     string
	description  string
	status       string
	propertyType string
	image        string
	size         string
	rooms        string
}

func (f *propertyFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.title, "title", "", "Title")
	flags.StringVar(&f.price, "price", "", "Price")
	flags.StringVar(&f.location, "location", "", "Location")
	flags.StringVar(&f.description, "description", "", "Description")
	flags.StringVar(&f.status, "status", "", "Status: available or sold")
	flags.StringVar(&f.propertyType, "type", "", "Type: apartment, house, villa, penthouse or commercial")
	flags.StringVar(&f.image, "image", "", "Image URL (empty clears it on update)")
	flags.StringVar(&f.size, "size", "", "Size (empty clears it on update)")
	flags.StringVar(&f.rooms, "rooms", "", "Number of rooms (empty clears it on update)")
}

// input returns only the fields whose flags were set; the server parses the values
func (f *propertyFlags) input(flags *pflag.FlagSet) models.PropertyInput {
	in := models.PropertyInput{}
	set := func(flag, field, value string) {
		if flags.Changed(flag) {
			in[field] = value
		}
	}

	set("title", models.FieldTitle, f.title)
	set("price", models.FieldPrice, f.price)
	set("location", models.FieldLocation, f.location)
	set("description", models.FieldDescription, f.description)
	set("status", models.FieldStatus, f.status)
	set("type", models.FieldPropertyType, f.propertyType)
	set("image", models.FieldImage, f.image)
	set("size", models.FieldSize, f.size)
	set("rooms", models.FieldRooms, f.rooms)
	return in
}

func (a *app) propertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"props"},
		Short:   "List and edit your properties",
	}

	cmd.AddCommand(
		a.propertiesListCmd(),
		a.propertiesCreateCmd(),
		a.propertiesUpdateCmd(),
		a.propertiesDeleteCmd(),
	)
	return cmd
}

func (a *app) propertiesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your properties, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			properties, err := a.session.FetchProperties(ctx)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), properties)
			}
			return printProperties(cmd.OutOrStdout(), properties)
		},
	}
}

func (a *app) propertiesCreateCmd() *cobra.Command {
	var fields propertyFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a property",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			property, err := a.session.CreateProperty(ctx, fields.input(cmd.Flags()))
			if err != nil {
				return err
			}
			return a.printProperty(cmd, "Created", property)
		},
	}

	fields.register(cmd.Flags())
	return cmd
}

func (a *app) propertiesUpdateCmd() *cobra.Command {
	var fields propertyFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change some fields of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			property, err := a.session.UpdateProperty(ctx, args[0], fields.input(cmd.Flags()))
			if err != nil {
				return err
			}
			return a.printProperty(cmd, "Updated", property)
		},
	}

	fields.register(cmd.Flags())
	return cmd
}

func (a *app) propertiesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			property, err := a.session.DeleteProperty(ctx, args[0])
			if err != nil {
				return err
			}
			return a.printProperty(cmd, "Deleted", property)
		},
	}
}

func (a *app) printProperty(cmd *cobra.Command, verb string, p *models.Property) error {
	if a.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), p)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", verb, p.Title, p.ID)
	return nil
}

func printProperties(w io.Writer, properties []models.Property) error {
	if len(properties) == 0 {
		_, err := fmt.Fprintln(w, "No properties yet")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tLOCATION\tPRICE\tTYPE\tSTATUS\tSIZE\tROOMS")
	for _, p := range properties {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, p.Location, p.Price, p.PropertyType, p.Status, optional(p.Size), optional(p.Rooms))
	}
	return tw.Flush()
}

func optional[T any](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
