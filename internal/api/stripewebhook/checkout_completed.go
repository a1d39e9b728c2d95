package stripewebhook

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"resolux-app/database"
	"resolux-app/internal/cache"
	"resolux-app/internal/domain/billing"
	"resolux-app/internal/domain/plans"
	"resolux-app/internal/domain/subscriptions"
	"resolux-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	subscriptionapi "github.com/stripe/stripe-go/v75/subscription"
	"gorm.io/gorm/clause"
)

func handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) error {
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	userID, err := userIDFromSessionOrRef(fullSession)
	if err != nil {
		return err
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	planType := ""
	if fullSession.Metadata != nil {
		planType = fullSession.Metadata["plan_type"]
	}

	var plan plans.Plan
	if planType != "" {
		_ = database.DB.Where("plan_type = ?", planType).First(&plan).Error
	}

	now := time.Now()

	// One-time payment (lifetime) has no Stripe subscription object.
	if fullSession.Mode == stripe.CheckoutSessionModePayment {
		if planType == "" {
			planType = subscriptions.PlanLifetime
		}
		end := subscriptions.ExpiryFrom(now, planType)
		if err := upsertSubscriber(user, true, tierFor(plan, planType), &end, nil, customerID(fullSession)); err != nil {
			return err
		}
		if err := recordGrant(user.ID, planType, now, end, nil); err != nil {
			return err
		}
		cache.InvalidateSubscriptionStatus(c.Request.Context(), user.ID)
		return nil
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	subscriptionID := fullSession.Subscription.ID

	subData, err := subscriptionapi.Get(subscriptionID, nil)
	if err != nil || subData == nil {
		return fmt.Errorf("failed to fetch subscription: %w", err)
	}

	if planType == "" && subData.Metadata != nil {
		planType = subData.Metadata["plan_type"]
	}
	if planType == "" {
		return errors.New("checkout session missing plan_type metadata")
	}

	periodEnd := time.Unix(subData.CurrentPeriodEnd, 0)

	if err := upsertSubscriber(user, true, tierFor(plan, planType), &periodEnd, &subscriptionID, customerID(fullSession)); err != nil {
		return err
	}
	if err := recordGrant(user.ID, planType, now, subscriptions.ExpiryFrom(now, planType), &subscriptionID); err != nil {
		return err
	}

	cache.InvalidateSubscriptionStatus(c.Request.Context(), user.ID)
	return nil
}

// upsertSubscriber writes the payment-provider-derived view of the user.
func upsertSubscriber(user users.User, subscribed bool, tier *string, end *time.Time, stripeSubID *string, stripeCustomerID *string) error {
	sub := billing.Subscriber{
		UserID:               user.ID,
		Email:                user.Email,
		Subscribed:           subscribed,
		SubscriptionTier:     tier,
		SubscriptionEnd:      end,
		StripeCustomerID:     stripeCustomerID,
		StripeSubscriptionID: stripeSubID,
		CheckedAt:            time.Now(),
	}

	if err := database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "subscribed", "subscription_tier", "subscription_end",
			"stripe_customer_id", "stripe_subscription_id", "checked_at", "updated_at",
		}),
	}).Create(&sub).Error; err != nil {
		return fmt.Errorf("failed to upsert subscriber: %w", err)
	}

	if stripeCustomerID != nil && (user.StripeCustomerID == nil || *user.StripeCustomerID == "") {
		_ = database.DB.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("stripe_customer_id", *stripeCustomerID).Error
	}
	return nil
}

// recordGrant creates the internal subscription row for the purchase. Expiry
// uses the fixed per-plan offsets, not Stripe's billing period.
func recordGrant(userID uint, planType string, start, end time.Time, stripeSubID *string) error {
	grant := subscriptions.Subscription{
		UserID:               userID,
		PlanType:             planType,
		Status:               subscriptions.StatusActive,
		StartedAt:            start,
		ExpiresAt:            end,
		StripeSubscriptionID: stripeSubID,
	}
	if err := database.DB.Create(&grant).Error; err != nil {
		return fmt.Errorf("failed to record subscription grant: %w", err)
	}
	return nil
}

func tierFor(plan plans.Plan, planType string) *string {
	if plan.Name != "" {
		return &plan.Name
	}
	if planType == "" {
		return nil
	}
	return &planType
}

func customerID(s *stripe.CheckoutSession) *string {
	if s.Customer != nil && s.Customer.ID != "" {
		id := s.Customer.ID
		return &id
	}
	return nil
}

func userIDFromSessionOrRef(s *stripe.CheckoutSession) (uint, error) {
	userIDStr := ""
	if s.Metadata != nil {
		userIDStr = s.Metadata["user_id"]
	}
	if userIDStr == "" {
		userIDStr = s.ClientReferenceID
	}
	if userIDStr == "" {
		return 0, errors.New("missing user_id (metadata.user_id or client_reference_id)")
	}

	uid64, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user_id %q: %w", userIDStr, err)
	}
	return uint(uid64), nil
}
