package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Settings=MockSettingsService

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"courtbook/config"
	"courtbook/infras/otel"
	"courtbook/internal/domains/settings/model"
	"courtbook/internal/domains/settings/model/dto"
	"courtbook/internal/domains/settings/repository"
	"courtbook/internal/events"
	"courtbook/internal/rules"
	"courtbook/internal/state"
	"courtbook/shared/cache"
	"courtbook/shared/constant"
	"courtbook/shared/failure"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const cacheGetSettings = constant.CacheKeySettings

type Settings interface {
	Get(ctx context.Context) (rules.Settings, error)
	UpdateFeatures(ctx context.Context, req dto.UpdateFeaturesRequest) (rules.Features, error)
	SetHours(ctx context.Context, req dto.SetHoursRequest) (rules.TimeSlotConfig, error)
	AddBlocked(ctx context.Context, req dto.BlockedPeriodRequest) (rules.TimeSlotConfig, error)
	RemoveBlocked(ctx context.Context, index int) error
	AddPeakRule(ctx context.Context, req dto.PeakRuleRequest) ([]rules.PeakRule, error)
	RemovePeakRule(ctx context.Context, index int) error
	AddTier(ctx context.Context, req dto.TierRequest) (rules.MembershipTier, error)
	RemoveTier(ctx context.Context, id string) error
	UpsertVerifiedMember(ctx context.Context, req dto.VerifiedMemberRequest) (rules.VerifiedMember, error)
	RemoveVerifiedMember(ctx context.Context, email string) error
	AddEquipment(ctx context.Context, req dto.EquipmentRequest) (rules.Equipment, error)
	AdjustStock(ctx context.Context, id string, delta int) (rules.Equipment, error)
	RemoveEquipment(ctx context.Context, id string) error
	AddBundle(ctx context.Context, req dto.BundleRequest) (rules.Bundle, error)
	RemoveBundle(ctx context.Context, id string) error
	AddPromo(ctx context.Context, req dto.PromoRequest) (rules.PromoCode, error)
	TogglePromo(ctx context.Context, code string) (rules.PromoCode, error)
	RemovePromo(ctx context.Context, code string) error
	RedeemPromo(ctx context.Context, code string) (bool, error)
}

type serviceImpl struct {
	// mu serialises read-modify-write cycles on the settings row.
	mu     sync.Mutex
	repo   repository.Settings
	state  *state.Store
	events events.Publisher
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(repo repository.Settings, store *state.Store, publisher events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Settings {
	return &serviceImpl{
		repo:   repo,
		state:  store,
		events: publisher,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res rules.Settings, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSettings")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = s.cache.Get(ctx, cacheGetSettings, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetSettings).Msg("cache hit for settings")

		return res, nil
	}

	res = s.state.Snapshot().Settings

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetSettings, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save settings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateFeatures(ctx context.Context, req dto.UpdateFeaturesRequest) (rules.Features, error) {
	settings, err := s.mutate(ctx, "UpdateFeatures", model.FieldFeatures, func(settings *rules.Settings) error {
		req.Apply(&settings.Features)

		return nil
	})

	return settings.Features, err
}

func (s *serviceImpl) SetHours(ctx context.Context, req dto.SetHoursRequest) (rules.TimeSlotConfig, error) {
	settings, err := s.mutate(ctx, "SetHours", model.FieldTimeSlots, func(settings *rules.Settings) error {
		return settings.SetHours(req.Open, req.Close, req.SlotDuration)
	})

	return settings.TimeSlots, err
}

func (s *serviceImpl) AddBlocked(ctx context.Context, req dto.BlockedPeriodRequest) (rules.TimeSlotConfig, error) {
	snap := s.state.Snapshot()
	courtExists := func(id string) bool {
		_, found := snap.Court(id)

		return found
	}

	settings, err := s.mutate(ctx, "AddBlocked", model.FieldTimeSlots, func(settings *rules.Settings) error {
		return settings.AddBlocked(req.ToRules(), courtExists)
	})

	return settings.TimeSlots, err
}

func (s *serviceImpl) RemoveBlocked(ctx context.Context, index int) error {
	_, err := s.mutate(ctx, "RemoveBlocked", model.FieldTimeSlots, func(settings *rules.Settings) error {
		return settings.RemoveBlocked(index)
	})

	return err
}

func (s *serviceImpl) AddPeakRule(ctx context.Context, req dto.PeakRuleRequest) ([]rules.PeakRule, error) {
	settings, err := s.mutate(ctx, "AddPeakRule", model.FieldPeakRules, func(settings *rules.Settings) error {
		return settings.AddPeakRule(req.ToRules())
	})

	return settings.PeakRules, err
}

func (s *serviceImpl) RemovePeakRule(ctx context.Context, index int) error {
	_, err := s.mutate(ctx, "RemovePeakRule", model.FieldPeakRules, func(settings *rules.Settings) error {
		return settings.RemovePeakRule(index)
	})

	return err
}

func (s *serviceImpl) AddTier(ctx context.Context, req dto.TierRequest) (res rules.MembershipTier, err error) {
	_, err = s.mutate(ctx, "AddTier", model.FieldMemberships, func(settings *rules.Settings) error {
		res, err = settings.AddTier(req.Name, req.DiscountPercent, req.Priority)

		return err
	})

	return res, err
}

// RemoveTier leaves verified members pointing at the removed tier untouched;
// they resolve to the none tier until reassigned.
func (s *serviceImpl) RemoveTier(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "RemoveTier", model.FieldMemberships, func(settings *rules.Settings) error {
		return settings.RemoveTier(id)
	})

	return err
}

func (s *serviceImpl) UpsertVerifiedMember(ctx context.Context, req dto.VerifiedMemberRequest) (res rules.VerifiedMember, err error) {
	_, err = s.mutate(ctx, "UpsertVerifiedMember", model.FieldVerifiedMembers, func(settings *rules.Settings) error {
		res, err = settings.UpsertVerifiedMember(req.Email, req.MembershipID)

		return err
	})

	return res, err
}

func (s *serviceImpl) RemoveVerifiedMember(ctx context.Context, email string) error {
	_, err := s.mutate(ctx, "RemoveVerifiedMember", model.FieldVerifiedMembers, func(settings *rules.Settings) error {
		return settings.RemoveVerifiedMember(email)
	})

	return err
}

func (s *serviceImpl) AddEquipment(ctx context.Context, req dto.EquipmentRequest) (res rules.Equipment, err error) {
	_, err = s.mutate(ctx, "AddEquipment", model.FieldEquipment, func(settings *rules.Settings) error {
		res, err = settings.AddEquipment(req.Name, req.Price, req.Stock, req.Unit)

		return err
	})

	return res, err
}

func (s *serviceImpl) AdjustStock(ctx context.Context, id string, delta int) (res rules.Equipment, err error) {
	_, err = s.mutate(ctx, "AdjustStock", model.FieldEquipment, func(settings *rules.Settings) error {
		res, err = settings.AdjustStock(id, delta)

		return err
	})

	return res, err
}

func (s *serviceImpl) RemoveEquipment(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "RemoveEquipment", model.FieldEquipment, func(settings *rules.Settings) error {
		return settings.RemoveEquipment(id)
	})

	return err
}

func (s *serviceImpl) AddBundle(ctx context.Context, req dto.BundleRequest) (res rules.Bundle, err error) {
	_, err = s.mutate(ctx, "AddBundle", model.FieldBundles, func(settings *rules.Settings) error {
		res, err = settings.AddBundle("b_"+uuid.NewString(), req.Name, req.Items, req.Discount, req.Price)

		return err
	})

	return res, err
}

func (s *serviceImpl) RemoveBundle(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "RemoveBundle", model.FieldBundles, func(settings *rules.Settings) error {
		return settings.RemoveBundle(id)
	})

	return err
}

func (s *serviceImpl) AddPromo(ctx context.Context, req dto.PromoRequest) (res rules.PromoCode, err error) {
	_, err = s.mutate(ctx, "AddPromo", model.FieldPromoCodes, func(settings *rules.Settings) error {
		res, err = settings.AddPromo(req.Code, req.Type, req.Value, req.Uses)

		return err
	})

	return res, err
}

func (s *serviceImpl) TogglePromo(ctx context.Context, code string) (res rules.PromoCode, err error) {
	_, err = s.mutate(ctx, "TogglePromo", model.FieldPromoCodes, func(settings *rules.Settings) error {
		res, err = settings.TogglePromo(code)

		return err
	})

	return res, err
}

func (s *serviceImpl) RemovePromo(ctx context.Context, code string) error {
	_, err := s.mutate(ctx, "RemovePromo", model.FieldPromoCodes, func(settings *rules.Settings) error {
		return settings.RemovePromo(code)
	})

	return err
}

var errNotRedeemed = errors.New("promo code not redeemable")

// RedeemPromo consumes one use of code. It reports false, without error, when
// the code is no longer redeemable.
func (s *serviceImpl) RedeemPromo(ctx context.Context, code string) (bool, error) {
	_, err := s.mutate(ctx, "RedeemPromo", model.FieldPromoCodes, func(settings *rules.Settings) error {
		if !settings.RedeemPromo(code) {
			return errNotRedeemed
		}

		return nil
	})

	if errors.Is(err, errNotRedeemed) {
		return false, nil
	}

	return err == nil, err
}

// mutate applies change to the current settings, persists field and publishes
// the result to state. Rule violations map to client errors.
func (s *serviceImpl) mutate(ctx context.Context, op, field string, change func(*rules.Settings) error) (res rules.Settings, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+op)
	defer scope.End()
	defer scope.TraceIfError(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	res = s.state.Snapshot().Settings

	if err = change(&res); err != nil {
		return res, translate(err)
	}

	value, ok := model.Column(res, field)
	if !ok {
		return res, fmt.Errorf("unknown settings column %q", field)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := map[string]any{
		field:                    value,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, model.SingletonFilter()); err != nil {
		log.Error().Err(err).Str("column", field).Msg("failed to update settings")

		return res, fmt.Errorf("failed to update settings: %w", err)
	}

	s.state.SetSettings(res)
	s.events.Publish(ctx, events.Event{Type: events.TypeSettingsChanged})

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, cacheGetSettings); err != nil {
			log.Error().Err(err).Msg("failed to delete settings from cache")
		}
	}()

	return res, nil
}

func translate(err error) error {
	var ruleErr *rules.RuleError
	if !errors.As(err, &ruleErr) {
		return err
	}

	if ruleErr.NotFound {
		return failure.NotFound(ruleErr.Message) // nolint:wrapcheck
	}

	return failure.BadRequestFromString(ruleErr.Message) // nolint:wrapcheck
}
