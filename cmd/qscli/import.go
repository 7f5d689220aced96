package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/robmarkaryan/quoteserver/storage/model"
)

// importEntry is one record of the import file: a quote with its author
// given by name. Authors are created on first use.
type importEntry struct {
	Author  string `json:"author"`
	Surname string `json:"surname"`
	Text    string `json:"text"`
	Rating  *int   `json:"rating"`
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import quotes from a JSON file into storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var entries []importEntry
		if err = json.Unmarshal(data, &entries); err != nil {
			return err
		}

		imported := 0
		for _, e := range entries {
			author, err := findOrCreateAuthor(e.Author, e.Surname)
			if err != nil {
				log.Printf("skipping quote by '%s': %v", e.Author, err)
				continue
			}
			if _, err = backends.Quotes.Create(author.ID, e.Text, e.Rating); err != nil {
				log.Printf("skipping quote by '%s': %v", e.Author, err)
				continue
			}
			imported++
		}
		log.Printf("Imported %d of %d quotes", imported, len(entries))
		return nil
	},
}

func findOrCreateAuthor(name, surname string) (*model.Author, error) {
	authors, err := backends.Authors.List("name", false)
	if err != nil {
		return nil, err
	}
	for _, a := range authors {
		if a.Name == name {
			return &a, nil
		}
	}
	return backends.Authors.Create(name, surname)
}
