package dto

import (
	"mime/multipart"

	"courtbook/internal/domains/court/model"
	"courtbook/shared"
	gDto "courtbook/shared/dto"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateCourtRequest struct {
	Name       string                `json:"name"        validate:"required,max=100"`
	Sport      string                `json:"sport"       validate:"required,max=50"`
	BaseRate   float64               `json:"base_rate"   validate:"required,gte=1"`
	MaxPlayers int                   `json:"max_players" validate:"omitempty,min=0"`
	TeamSize   int                   `json:"team_size"   validate:"omitempty,min=0"`
	Image      *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile  multipart.File        `json:"-"`
	Active     *bool                 `json:"active"      validate:"omitempty"`
}

func (c *CreateCourtRequest) ToModel(user string, imageURL string) model.Court {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Court{
		ID:         uuid.NewString(),
		Name:       c.Name,
		Sport:      c.Sport,
		BaseRate:   c.BaseRate,
		MaxPlayers: c.MaxPlayers,
		TeamSize:   c.TeamSize,
		Image:      imageURL,
		Active:     active,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateCourtRequest struct {
	Name       string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Sport      string                `db:"sport"       json:"sport"       validate:"omitempty,max=50"`
	BaseRate   float64               `db:"base_rate"   json:"base_rate"   validate:"omitempty,gte=1"`
	MaxPlayers *int                  `db:"max_players" json:"max_players" validate:"omitempty,min=0"`
	TeamSize   *int                  `db:"team_size"   json:"team_size"   validate:"omitempty,min=0"`
	Image      *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile  multipart.File        `json:"-"`
	Active     *bool                 `db:"active"      json:"active"      validate:"omitempty"`
}

// Apply overlays the request onto a court so state can be updated without a reload.
func (u *UpdateCourtRequest) Apply(court model.Court) model.Court {
	if u.Name != "" {
		court.Name = u.Name
	}

	if u.Sport != "" {
		court.Sport = u.Sport
	}

	if u.BaseRate > 0 {
		court.BaseRate = u.BaseRate
	}

	if u.MaxPlayers != nil {
		court.MaxPlayers = *u.MaxPlayers
	}

	if u.TeamSize != nil {
		court.TeamSize = *u.TeamSize
	}

	if u.Active != nil {
		court.Active = *u.Active
	}

	return court
}

type CourtResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Sport      string  `json:"sport"`
	BaseRate   float64 `json:"base_rate"`
	MaxPlayers int     `json:"max_players"`
	TeamSize   int     `json:"team_size"`
	Image      string  `json:"image"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *CourtResponse) FromModel(model model.Court) {
	r.ID = model.ID
	r.Name = model.Name
	r.Sport = model.Sport
	r.BaseRate = model.BaseRate
	r.MaxPlayers = model.MaxPlayers
	r.TeamSize = model.TeamSize
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetCourtsResponse struct {
	Courts    []CourtResponse `json:"courts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetCourtsResponse) FromModels(models []model.Court, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Courts = make([]CourtResponse, len(models))
	for i, mod := range models {
		r.Courts[i].FromModel(mod)
	}
}

type TodayBooking struct {
	ID     string `json:"id"`
	Player string `json:"player"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type CourtStatusResponse struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Sport    string         `json:"sport"`
	Busy     bool           `json:"busy"`
	Bookings []TodayBooking `json:"bookings"`
}
