package dto

import (
	"courtbook/internal/domains/waitlist/model"
	"courtbook/shared"
	gDto "courtbook/shared/dto"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
)

type JoinWaitlistRequest struct {
	CourtID string `json:"court_id" validate:"required"`
	Date    string `json:"date"     validate:"required,datetime=2006-01-02"`
	Start   string `json:"start"    validate:"required,clock"`
	End     string `json:"end"      validate:"required,clock"`
	Player  string `json:"player"   validate:"required,max=100"`
}

func (j *JoinWaitlistRequest) ToModel(user, email, courtName string) model.Entry {
	now := timezone.Now()

	return model.Entry{
		ID:        "wl_" + uuid.NewString(),
		CourtID:   j.CourtID,
		CourtName: courtName,
		Date:      j.Date,
		StartTime: j.Start,
		EndTime:   j.End,
		Player:    j.Player,
		UserEmail: email,
		Metadata:  gModel.NewMetadata(user, now),
	}
}

type EntryResponse struct {
	ID        string `json:"id"`
	CourtID   string `json:"court_id"`
	CourtName string `json:"court_name"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Player    string `json:"player"`
	UserEmail string `json:"user_email"`
	gDto.Metadata
}

func (r *EntryResponse) FromModel(model model.Entry) {
	r.ID = model.ID
	r.CourtID = model.CourtID
	r.CourtName = model.CourtName
	r.Date = model.Date
	r.Start = model.StartTime
	r.End = model.EndTime
	r.Player = model.Player
	r.UserEmail = model.UserEmail
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEntriesResponse) FromModels(models []model.Entry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Entries = make([]EntryResponse, len(models))
	for i, mod := range models {
		r.Entries[i].FromModel(mod)
	}
}
