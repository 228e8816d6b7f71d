package provider

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

const (
	defaultValidationTTL = 30 * time.Second
	validationKeyPrefix  = "offer:validation:"
)

// CachingValidator wraps an OfferValidator with a short-lived Redis cache.
// Validations go stale fast (offers sell out), so the TTL stays small and
// only positive validations are cached. Cache failures fall through to the
// inner validator, Redis being down never blocks bookings.
type CachingValidator struct {
	inner  OfferValidator
	client *redis.Client
	ttl    time.Duration
}

// CachingValidatorOption configures a CachingValidator.
type CachingValidatorOption func(*CachingValidator)

// WithValidationTTL overrides the default cache TTL.
func WithValidationTTL(ttl time.Duration) CachingValidatorOption {
	return func(v *CachingValidator) {
		v.ttl = ttl
	}
}

// NewCachingValidator wraps the given validator with a Redis cache.
func NewCachingValidator(inner OfferValidator, client *redis.Client, options ...CachingValidatorOption) *CachingValidator {
	validator := &CachingValidator{
		inner:  inner,
		client: client,
		ttl:    defaultValidationTTL,
	}

	for _, option := range options {
		option(validator)
	}

	return validator
}

// ValidateOffer returns a cached validation when one is fresh, otherwise asks
// the inner validator and caches a positive answer.
func (v *CachingValidator) ValidateOffer(ctx context.Context, offerID string) (OfferValidation, error) {
	cacheKey := validationKeyPrefix + offerID

	cached, getErr := v.client.Get(ctx, cacheKey).Bytes()
	if getErr == nil {
		var validation OfferValidation
		if unmarshalErr := jsoniter.ConfigFastest.Unmarshal(cached, &validation); unmarshalErr == nil {
			return validation, nil
		}
	} else if !errors.Is(getErr, redis.Nil) && ctx.Err() != nil {
		return OfferValidation{}, ctx.Err()
	}

	validation, validateErr := v.inner.ValidateOffer(ctx, offerID)
	if validateErr != nil {
		return OfferValidation{}, validateErr
	}

	if validation.Valid {
		if payload, marshalErr := jsoniter.ConfigFastest.Marshal(validation); marshalErr == nil {
			v.client.Set(ctx, cacheKey, payload, v.ttl)
		}
	}

	return validation, nil
}
