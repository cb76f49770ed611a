package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"sort"

	"courtbook/config"
	"courtbook/infras/otel"
	"courtbook/infras/s3"
	"courtbook/internal/domains/court/model"
	"courtbook/internal/domains/court/model/dto"
	"courtbook/internal/domains/court/repository"
	"courtbook/internal/events"
	"courtbook/internal/rules"
	"courtbook/internal/state"
	"courtbook/shared"
	"courtbook/shared/cache"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetCourt    = "court:get"
	cacheGetAllCourt = "court:gets"
	cacheCountCourt  = "court:count"
)

type Court interface {
	Create(ctx context.Context, req dto.CreateCourtRequest) (dto.CourtResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCourtsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CourtResponse, error)
	Update(ctx context.Context, req dto.UpdateCourtRequest, id string) error
	ToggleActive(ctx context.Context, id string) (dto.CourtResponse, error)
	Delete(ctx context.Context, id string) error
	Status(ctx context.Context) ([]dto.CourtStatusResponse, error)
}

type serviceImpl struct {
	repo   repository.Court
	state  *state.Store
	events events.Publisher
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	s3     s3.S3
}

func New(repo repository.Court, store *state.Store, publisher events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Court {
	return &serviceImpl{
		repo:   repo,
		state:  store,
		events: publisher,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
		s3:     s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCourtRequest) (res dto.CourtResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL, objectName, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return res, err
	}

	court := req.ToModel(user, imageURL)

	if err = s.repo.Insert(ctx, court); err != nil {
		log.Error().Err(err).Msg("failed to create court")
		s.discardImage(ctx, objectName)

		return res, fmt.Errorf("failed to create court: %w", err)
	}

	s.state.PutCourt(court.ToRules())
	s.invalidate(ctx, court.ID)

	res.FromModel(court)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCourtsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCourt, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for courts")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count courts")

		return res, fmt.Errorf("failed to count courts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get courts")

		return res, fmt.Errorf("failed to get courts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save courts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCourt, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for court count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count courts")

		return res, fmt.Errorf("failed to count courts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save court count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CourtResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetCourt, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for court")

		return res, nil
	}

	court, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(court)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save court to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCourtRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	imageURL, objectName, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update court")
		s.discardImage(ctx, objectName)

		return fmt.Errorf("failed to update court: %w", err)
	}

	if imageURL != constant.Empty && current.Image != constant.Empty {
		s.discardImage(ctx, s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, current.Image))
	}

	s.state.PutCourt(req.Apply(current).ToRules())
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) ToggleActive(ctx context.Context, id string) (res dto.CourtResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleActive")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	court, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	court.Active = !court.Active
	court.ModifiedAt = timezone.Now()
	court.ModifiedBy = user

	updatedFields := map[string]any{
		model.FieldActive:        court.Active,
		constant.FieldModifiedAt: court.ModifiedAt,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to toggle court")

		return res, fmt.Errorf("failed to toggle court: %w", err)
	}

	s.state.PutCourt(court.ToRules())
	s.invalidate(ctx, id)

	res.FromModel(court)

	return res, nil
}

// Delete removes a court that no booking has ever referenced. Courts with
// history are deactivated instead so past bookings keep their court.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	court, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	snap := s.state.Snapshot()
	if slices.ContainsFunc(snap.Bookings, func(b rules.Booking) bool { return b.CourtID == id }) {
		return failure.ConflictWithReason(failure.ReasonInUse, "Court has bookings. Deactivate it instead.") // nolint:wrapcheck
	}

	if _, err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete court")

		return fmt.Errorf("failed to delete court: %w", err)
	}

	if court.Image != constant.Empty {
		s.discardImage(ctx, s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, court.Image))
	}

	s.state.RemoveCourt(id)
	s.invalidate(ctx, id)

	return nil
}

// Status reports which active courts are in use right now, with today's bookings.
func (s *serviceImpl) Status(ctx context.Context) (res []dto.CourtStatusResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Status")
	defer scope.End()

	today := timezone.Today()
	minute := timezone.MinuteOfDay(timezone.Now())

	snap := s.state.Snapshot()
	res = make([]dto.CourtStatusResponse, 0, len(snap.Courts))

	for _, court := range snap.Courts {
		if !court.Active {
			continue
		}

		status := dto.CourtStatusResponse{
			ID:       court.ID,
			Name:     court.Name,
			Sport:    court.Sport,
			Bookings: []dto.TodayBooking{},
		}

		for _, b := range snap.Bookings {
			if b.CourtID != court.ID || b.Date != today || b.Status == rules.StatusCancelled {
				continue
			}

			status.Bookings = append(status.Bookings, dto.TodayBooking{ID: b.ID, Player: b.Player, Start: b.Start, End: b.End})

			start, startErr := rules.ParseClock(b.Start)
			end, endErr := rules.ParseClock(b.End)

			if startErr == nil && endErr == nil && start <= minute && minute < end {
				status.Busy = true
			}
		}

		sort.Slice(status.Bookings, func(i, j int) bool { return status.Bookings[i].Start < status.Bookings[j].Start })

		res = append(res, status)
	}

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Court, error) {
	court, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get court")

		return court, fmt.Errorf("failed to get court: %w", err)
	}

	if court.ID == constant.Empty {
		return court, failure.NotFound("court not found") // nolint:wrapcheck
	}

	return court, nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, header *multipart.FileHeader, file multipart.File) (url, objectName string, err error) {
	if header == nil {
		return constant.Empty, constant.Empty, nil
	}

	objectName = uuid.NewString() + filepath.Ext(header.Filename)

	url, err = s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, constant.DirectoryCourtImages, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload court image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) discardImage(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, constant.DirectoryCourtImages, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete court image")
	}
}

// invalidate drops cached court reads and tells peers the court changed.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	s.events.Publish(ctx, events.Event{Type: events.TypeCourtChanged, CourtID: id})

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCourt, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete court from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCourt)
		shared.InvalidateCaches(c, s.cache, cacheCountCourt)
	}()
}
