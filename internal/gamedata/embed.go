// Package gamedata provides the embedded content tables the dungeon draws
// encounters, gems and treasure from, plus display colours.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
