package model

import (
	"courtbook/internal/rules"
	"courtbook/shared/model"
)

const (
	TableName  = "courts"
	EntityName = "court"

	FieldID         = "id"
	FieldName       = "name"
	FieldSport      = "sport"
	FieldBaseRate   = "base_rate"
	FieldMaxPlayers = "max_players"
	FieldTeamSize   = "team_size"
	FieldImage      = "image"
	FieldActive     = "active"
)

type Court struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	Sport      string  `db:"sport"`
	BaseRate   float64 `db:"base_rate"`
	MaxPlayers int     `db:"max_players"`
	TeamSize   int     `db:"team_size"`
	Image      string  `db:"image"`
	Active     bool    `db:"active"`
	model.Metadata
}

func (c Court) ToRules() rules.Court {
	return rules.Court{
		ID:         c.ID,
		Name:       c.Name,
		Sport:      c.Sport,
		BaseRate:   c.BaseRate,
		MaxPlayers: c.MaxPlayers,
		TeamSize:   c.TeamSize,
		Active:     c.Active,
	}
}
