package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"galleryapi/client"
)

var (
	renderHTML bool

	addName        string
	addDate        string
	addPeople      string
	addDescription string

	editSet []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all photos, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, session, err := connect()
		if err != nil {
			return err
		}

		var photos []client.Photo
		if err := gw.Call(cmd.Context(), "getphotos", nil, &photos); err != nil {
			return fmt.Errorf("list photos: %w", err)
		}

		if renderHTML {
			html, err := client.NewRenderer().RenderList(photos, session.Current() != nil)
			if err != nil {
				return err
			}
			fmt.Println(html)
			return nil
		}

		if len(photos) == 0 {
			fmt.Println("No photos found. Add one!")
			return nil
		}
		for _, p := range photos {
			name := p.Name
			if name == "" {
				name = "Untitled"
			}
			fmt.Printf("%s\t%s\t%s\n", p.ID, name, p.Date)
		}
		return nil
	},
}

var viewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one photo's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, _, err := connect()
		if err != nil {
			return err
		}

		var p client.Photo
		if err := gw.Call(cmd.Context(), "getphotodetails", map[string]string{"photoId": args[0]}, &p); err != nil {
			return fmt.Errorf("fetch photo: %w", err)
		}

		if renderHTML {
			html, err := client.NewRenderer().RenderDetail(p)
			if err != nil {
				return err
			}
			fmt.Println(html)
			return nil
		}

		fmt.Printf("id:          %s\n", p.ID)
		fmt.Printf("name:        %s\n", p.Name)
		fmt.Printf("date:        %s\n", p.Date)
		fmt.Printf("people:      %s\n", p.People)
		fmt.Printf("description: %s\n", p.Description)
		fmt.Printf("image:       %s\n", p.ImageURL)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <imagefile>",
	Short: "Upload an image and create its record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, session, err := connect()
		if err != nil {
			return err
		}

		contents, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}

		flow := client.NewAddFlow(session, client.NewRemoteUploader(gw), gw, terminalFrontend{})
		if err := flow.Run(cmd.Context(), args[0], contents, client.PhotoMeta{
			Name:        addName,
			Date:        addDate,
			People:      addPeople,
			Description: addDescription,
		}); err != nil {
			return err
		}
		if flow.State() != client.FlowSucceeded {
			return errors.New("photo was not added")
		}
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update photo metadata",
	Long: `Update photo metadata with repeated --set key=value flags. Setting a key
to an empty value clears that field; fields never named stay untouched.
Editable keys: name, date, people, description.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(editSet) == 0 {
			return errors.New("nothing to update, pass at least one --set key=value")
		}

		fields := make(map[string]string, len(editSet))
		for _, kv := range editSet {
			key, value, found := strings.Cut(kv, "=")
			if !found || key == "" {
				return fmt.Errorf("invalid --set %q, expected key=value", kv)
			}
			fields[key] = value
		}

		gw, session, err := connect()
		if err != nil {
			return err
		}
		flow := client.NewEditFlow(session, gw, terminalFrontend{})
		if err := flow.Submit(cmd.Context(), args[0], fields); err != nil {
			return err
		}
		if flow.State() != client.FlowSucceeded {
			return errors.New("photo was not updated")
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a photo and its stored image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, session, err := connect()
		if err != nil {
			return err
		}
		flow := client.NewDeleteFlow(session, gw, terminalFrontend{})
		photos, err := flow.Run(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if flow.State() != client.FlowSucceeded {
			return nil
		}

		fmt.Printf("deleted, %d photos remain\n", len(photos))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <imagefile>",
	Short: "Find a photo by visual match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, session, err := connect()
		if err != nil {
			return err
		}

		image, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}

		flow := client.NewSearchFlow(session, gw, terminalFrontend{})
		id, err := flow.Run(cmd.Context(), image)
		if err != nil {
			return err
		}
		if id == "" {
			return nil
		}
		fmt.Println(id)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&renderHTML, "html", false, "Render as an HTML fragment")
	viewCmd.Flags().BoolVar(&renderHTML, "html", false, "Render as an HTML fragment")

	addCmd.Flags().StringVar(&addName, "name", "", "Photo name")
	addCmd.Flags().StringVar(&addDate, "date", "", "Date the photo was taken")
	addCmd.Flags().StringVar(&addPeople, "people", "", "People in the photo")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Photo description")

	editCmd.Flags().StringArrayVar(&editSet, "set", nil, "Field to update as key=value, repeatable")

	rootCmd.AddCommand(listCmd, viewCmd, addCmd, editCmd, deleteCmd, searchCmd)
}
