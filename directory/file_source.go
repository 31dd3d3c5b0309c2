package directory

import (
	"context"
	"fmt"
	"log"

	"github.com/BurntSushi/toml"
	"github.com/icecave/beeline/tenant"
)

// FileSource loads tenant configurations from a TOML file.
//
// The file contains one [domains."<hostname>"] table per tenant:
//
//	[domains."docs.example.com"]
//	title = "Example Docs"
//	description = "Documentation for Example"
//	google-font = "Roboto"
//
//	[domains."docs.example.com".slugs]
//	guide = "abcd1234abcd1234abcd1234abcd1234"
type FileSource struct {
	// Path is the location of the TOML file.
	Path string

	// An optional logger for information about loaded tenants.
	Logger *log.Logger
}

type fileSchema struct {
	Domains map[string]domainSchema `toml:"domains"`
}

type domainSchema struct {
	Title        string            `toml:"title"`
	Description  string            `toml:"description"`
	GoogleFont   string            `toml:"google-font"`
	CustomScript string            `toml:"custom-script"`
	Slugs        map[string]string `toml:"slugs"`
}

// Load reads all tenant configurations from the file.
func (source *FileSource) Load(_ context.Context) (map[string]*tenant.Config, error) {
	var schema fileSchema

	if _, err := toml.DecodeFile(source.Path, &schema); err != nil {
		return nil, fmt.Errorf("directory: unable to load tenant file %s: %w", source.Path, err)
	}

	configs := make(map[string]*tenant.Config, len(schema.Domains))

	for domain, entry := range schema.Domains {
		configs[domain] = &tenant.Config{
			Domain:       domain,
			SlugToPage:   entry.Slugs,
			Title:        entry.Title,
			Description:  entry.Description,
			GoogleFont:   entry.GoogleFont,
			CustomScript: entry.CustomScript,
		}

		if source.Logger != nil {
			source.Logger.Printf(
				"directory: Loaded tenant '%s' with %d slug(s) from %s",
				domain,
				len(entry.Slugs),
				source.Path,
			)
		}
	}

	return configs, nil
}
