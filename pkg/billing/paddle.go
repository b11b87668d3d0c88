package billing

import (
	"context"
	"strconv"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"

	"github.com/dmitrymomot/entitlements/pkg/errs"
)

// PaddleConfig holds configuration for the Paddle provider.
type PaddleConfig struct {
	APIKey      string `env:"PADDLE_API_KEY"`
	Environment string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

type subscriptionsAPI interface {
	GetSubscription(ctx context.Context, req *paddle.GetSubscriptionRequest) (*paddle.Subscription, error)
}

type customersAPI interface {
	GetCustomer(ctx context.Context, req *paddle.GetCustomerRequest) (*paddle.Customer, error)
}

type discountsAPI interface {
	GetDiscount(ctx context.Context, req *paddle.GetDiscountRequest) (*paddle.Discount, error)
}

// PaddleProvider reads subscriptions, customers and discounts from Paddle.
// It never mutates provider state.
type PaddleProvider struct {
	subscriptions subscriptionsAPI
	customers     customersAPI
	discounts     discountsAPI
}

var _ Provider = (*PaddleProvider)(nil)

// NewPaddleProvider creates a provider for the sandbox or production API.
func NewPaddleProvider(cfg PaddleConfig) (*PaddleProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var (
		client *paddle.SDK
		err    error
	)
	switch strings.ToLower(cfg.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(cfg.APIKey)
	case "production", "":
		client, err = paddle.New(cfg.APIKey)
	default:
		return nil, errs.WithInfo(ErrInvalidEnvironment, map[string]any{"environment": cfg.Environment})
	}
	if err != nil {
		return nil, errs.Collaborator("paddle.New", err)
	}

	return &PaddleProvider{
		subscriptions: client.SubscriptionsClient,
		customers:     client.CustomersClient,
		discounts:     client.DiscountsClient,
	}, nil
}

// GetSubscription maps a Paddle subscription. The first item's price id is
// the plan code; further items are add-ons. Paddle does not itemise
// scheduled changes, so PendingChange is always nil.
func (p *PaddleProvider) GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error) {
	sub, err := p.subscriptions.GetSubscription(ctx, &paddle.GetSubscriptionRequest{SubscriptionID: subscriptionID})
	if err != nil {
		return nil, errs.Collaborator("paddle.GetSubscription", err)
	}
	return mapSubscription(sub)
}

func (p *PaddleProvider) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	c, err := p.customers.GetCustomer(ctx, &paddle.GetCustomerRequest{CustomerID: accountID})
	if err != nil {
		return nil, errs.Collaborator("paddle.GetCustomer", err)
	}

	acc := &Account{ID: c.ID, Email: c.Email}
	if c.Name != nil {
		acc.Name = *c.Name
	}
	return acc, nil
}

func (p *PaddleProvider) GetCoupon(ctx context.Context, couponID string) (*Coupon, error) {
	d, err := p.discounts.GetDiscount(ctx, &paddle.GetDiscountRequest{DiscountID: couponID})
	if err != nil {
		return nil, errs.Collaborator("paddle.GetDiscount", err)
	}

	coupon := &Coupon{
		Code:         d.ID,
		Name:         d.Description,
		Description:  d.Description,
		DiscountType: string(d.Type),
		Amount:       d.Amount,
	}
	if d.Code != nil && *d.Code != "" {
		coupon.Code = *d.Code
	}
	return coupon, nil
}

func mapSubscription(sub *paddle.Subscription) (*Subscription, error) {
	if len(sub.Items) == 0 {
		return nil, errs.WithInfo(ErrEmptySubscription, map[string]any{"subscriptionId": sub.ID})
	}

	out := &Subscription{
		ID:        sub.ID,
		AccountID: sub.CustomerID,
		Currency:  string(sub.CurrencyCode),
		State:     State(sub.Status),
		PlanCode:  sub.Items[0].Price.ID,
		PlanName:  sub.Items[0].Price.Description,
	}
	if userID, ok := sub.CustomData["customer_id"].(string); ok {
		out.UserID = userID
	}
	for _, item := range sub.Items[1:] {
		out.AddOns = append(out.AddOns, AddOn{
			Code:      item.Price.ID,
			Quantity:  item.Quantity,
			UnitPrice: parseAmount(item.Price.UnitPrice.Amount),
		})
	}
	if period := sub.CurrentBillingPeriod; period != nil {
		out.PeriodStart = parseTime(period.StartsAt)
		out.PeriodEnd = parseTime(period.EndsAt)
	}
	return out, nil
}

func parseAmount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseTime(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
