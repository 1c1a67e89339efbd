// Package configs embeds the files the installer seeds into the runtime directory.
package configs

import "embed"

//go:embed heroes_db.json
var FS embed.FS

const HeroesFile = "heroes_db.json"
