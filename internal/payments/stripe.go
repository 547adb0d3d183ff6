package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/account"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/Leganyst/beauty-platform/internal/repository"
	"github.com/Leganyst/beauty-platform/internal/service"
)

// IntentService создаёт платёжные интенты со сплитом: деньги уходят
// на подключённый аккаунт мастера, площадка удерживает комиссию.
type IntentService struct {
	bookingRepo repository.BookingRepository
	proRepo     repository.ProfessionalRepository

	currency string
	// Комиссия площадки в процентах от суммы записи.
	commissionPercent float64
}

func NewIntentService(
	bookingRepo repository.BookingRepository,
	proRepo repository.ProfessionalRepository,
	currency string,
	commissionPercent float64,
) *IntentService {
	return &IntentService{
		bookingRepo:       bookingRepo,
		proRepo:           proRepo,
		currency:          currency,
		commissionPercent: commissionPercent,
	}
}

// Intent — результат создания платёжного интента для чекаута.
type Intent struct {
	ClientSecret        string
	AmountCents         int64
	ApplicationFeeCents int64
}

// CreateIntent создаёт PaymentIntent по записи. Вызывается клиентом
// записи перед оплатой; идентификатор записи кладётся в metadata,
// по нему reconciler находит запись при доставке вебхука.
func (s *IntentService) CreateIntent(ctx context.Context, actorID, bookingID uuid.UUID) (*Intent, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, service.ErrNotFound
	}
	if b.ClientID != actorID {
		return nil, service.ErrForbidden
	}
	if b.TotalCents <= 0 {
		return nil, &service.ValidationError{Field: "total_cents", Msg: "booking has no payable amount"}
	}

	pro, err := s.proRepo.GetByID(ctx, b.ProID)
	if err != nil {
		return nil, service.ErrNotFound
	}
	if pro.StripeAccountID == "" {
		return nil, &service.ExternalServiceError{Reason: "professional has no connected account"}
	}

	// Снимок charges_enabled в БД может устареть — спрашиваем провайдера.
	acct, err := account.GetByID(pro.StripeAccountID, nil)
	if err != nil {
		return nil, &service.ExternalServiceError{Reason: "retrieve connected account", Err: err}
	}
	if !acct.ChargesEnabled {
		return nil, &service.ExternalServiceError{Reason: "connected account cannot accept charges yet"}
	}

	fee := int64(math.Round(s.commissionPercent / 100 * float64(b.TotalCents)))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(b.TotalCents),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		ApplicationFeeAmount: stripe.Int64(fee),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(pro.StripeAccountID),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", b.ID.String())
	params.AddMetadata("service_id", b.ServiceID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, &service.ExternalServiceError{Reason: "create payment intent", Err: err}
	}

	if err := s.bookingRepo.SetPaymentIntent(ctx, b.ID, pi.ID); err != nil {
		return nil, fmt.Errorf("attach intent %s to booking %s: %w", pi.ID, b.ID, err)
	}

	return &Intent{
		ClientSecret:        pi.ClientSecret,
		AmountCents:         b.TotalCents,
		ApplicationFeeCents: fee,
	}, nil
}

// LinkAccount привязывает подключённый аккаунт провайдера к мастеру.
// Состояние charges_enabled запрашивается у провайдера и кешируется
// в профиле; до включения charges интенты по услугам мастера не создаются.
func (s *IntentService) LinkAccount(ctx context.Context, proID uuid.UUID, accountID string) (bool, error) {
	if accountID == "" {
		return false, &service.ValidationError{Field: "account_id", Msg: "is required"}
	}
	if _, err := s.proRepo.GetByID(ctx, proID); err != nil {
		return false, service.ErrNotFound
	}

	acct, err := account.GetByID(accountID, nil)
	if err != nil {
		return false, &service.ExternalServiceError{Reason: "retrieve connected account", Err: err}
	}

	if err := s.proRepo.UpdateStripeStatus(ctx, proID, accountID, acct.ChargesEnabled); err != nil {
		return false, fmt.Errorf("store account %s for pro %s: %w", accountID, proID, err)
	}
	return acct.ChargesEnabled, nil
}

// ParseStripeEvent проверяет подпись вебхука и переводит событие Stripe
// в доменное. known=false — тип события ядру не интересен (no-op,
// не ошибка: схема провайдера может расширяться).
func ParseStripeEvent(payload []byte, sigHeader, secret string) (Event, bool, error) {
	stripeEvent, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return Event{}, false, fmt.Errorf("verify webhook signature: %w", err)
	}

	var evType EventType
	switch string(stripeEvent.Type) {
	case "payment_intent.succeeded":
		evType = EventSucceeded
	case "payment_intent.payment_failed":
		evType = EventFailed
	case "payment_intent.processing":
		evType = EventProcessing
	default:
		return Event{ID: stripeEvent.ID}, false, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(stripeEvent.Data.Raw, &pi); err != nil {
		return Event{}, false, fmt.Errorf("decode payment intent from event %s: %w", stripeEvent.ID, err)
	}

	ev := Event{
		ID:       stripeEvent.ID,
		Type:     evType,
		IntentID: pi.ID,
		Raw:      stripeEvent.Data.Raw,
	}
	if raw := pi.Metadata["booking_id"]; raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			ev.BookingID = id
		}
	}
	return ev, true, nil
}
