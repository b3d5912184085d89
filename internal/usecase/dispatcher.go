package usecase

import (
	"context"
	"errors"
	"time"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/internal/domain/repository"
	"tabletalk-service/pkg/logger"
	"tabletalk-service/pkg/metrics"
	"tabletalk-service/pkg/utils"
	"tabletalk-service/templates"
)

// Intent names the tool a turn resolved to
type Intent string

const (
	IntentLookup       Intent = "lookup_reservation"
	IntentCreate       Intent = "create_reservation"
	IntentCancel       Intent = "cancel_reservation"
	IntentCheck        Intent = "check_availability"
	IntentDetails      Intent = "reservation_details"
	IntentQuestion     Intent = "restaurant_question"
	IntentUnrecognized Intent = "unrecognized"
)

// Duplicate policy for create_reservation when the phone already has a record
const (
	DuplicateAllow     = "allow"
	DuplicateReject    = "reject"
	DuplicateOverwrite = "overwrite"
)

// TurnRequest carries one recognized turn from the transport layer
type TurnRequest struct {
	Intent    Intent
	Utterance string
	Name      string
	Phone     string
	Date      string
	Time      string
	Guests    int
}

// TurnResponse is handed back to the transport to be spoken or displayed
type TurnResponse struct {
	Reply          string
	Verdict        *entity.Verdict
	HasReservation bool
	State          string
}

// Dispatcher maps recognized intents onto the reservation store, the
// availability checker and the knowledge source, mutating the session state
// as it goes. All storage and knowledge failures are converted into polite
// replies; a turn never aborts the conversation.
type Dispatcher struct {
	store           repository.ReservationRepository
	checker         *AvailabilityChecker
	knowledgeRepo   repository.KnowledgeRepository
	frontdeskRepo   repository.FrontdeskRepository
	metrics         *metrics.Metrics
	logger          logger.Logger
	duplicatePolicy string
	enforceGate     bool
	now             func() time.Time
}

// NewDispatcher creates a new dialogue turn dispatcher
func NewDispatcher(
	store repository.ReservationRepository,
	checker *AvailabilityChecker,
	knowledgeRepo repository.KnowledgeRepository,
	frontdeskRepo repository.FrontdeskRepository,
	m *metrics.Metrics,
	logger logger.Logger,
	duplicatePolicy string,
	enforceGate bool,
) *Dispatcher {
	if duplicatePolicy == "" {
		duplicatePolicy = DuplicateReject
	}
	return &Dispatcher{
		store:           store,
		checker:         checker,
		knowledgeRepo:   knowledgeRepo,
		frontdeskRepo:   frontdeskRepo,
		metrics:         m,
		logger:          logger,
		duplicatePolicy: duplicatePolicy,
		enforceGate:     enforceGate,
		now:             time.Now,
	}
}

// WithClock overrides the reference clock, for tests
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Dispatch processes one turn against the session. The caller guarantees
// turns for one session arrive one at a time, in order.
func (d *Dispatcher) Dispatch(ctx context.Context, session *entity.Session, req *TurnRequest) *TurnResponse {
	start := time.Now()
	defer func() {
		d.metrics.TurnsProcessed.Inc()
		d.metrics.TurnDuration.Observe(time.Since(start).Seconds())
	}()

	var resp *TurnResponse
	switch req.Intent {
	case IntentLookup:
		resp = d.lookupReservation(ctx, session, req)
	case IntentCreate:
		resp = d.createReservation(ctx, session, req)
	case IntentCancel:
		resp = d.cancelReservation(ctx, session, req)
	case IntentCheck:
		resp = d.checkAvailability(ctx, session, req)
	case IntentDetails:
		resp = d.reservationDetails(session)
	case IntentQuestion:
		resp = d.answerQuestion(ctx, req)
	default:
		resp = d.routeUnrecognized(session, req)
	}

	resp.HasReservation = session.HasReservation()
	resp.State = session.State
	return resp
}

func (d *Dispatcher) lookupReservation(ctx context.Context, session *entity.Session, req *TurnRequest) *TurnResponse {
	phone := utils.NormalizePhone(req.Phone)
	if phone == "" {
		return &TurnResponse{Reply: templates.MissingField("phone number")}
	}

	record, err := d.store.FindByPhone(ctx, phone)
	if errors.Is(err, entity.ErrNotFound) {
		return &TurnResponse{Reply: templates.ReservationNotFound()}
	}
	if err != nil {
		d.logger.Error("Reservation lookup failed", "phone", phone, "error", err)
		d.metrics.ErrorsCount.WithLabelValues("lookup").Inc()
		return &TurnResponse{Reply: templates.StorageApology()}
	}

	session.LoadReservation(record)
	d.logger.Info("Reservation loaded into session", "session", session.ID, "phone", phone)
	return &TurnResponse{Reply: templates.ReservationFound(record)}
}

func (d *Dispatcher) checkAvailability(ctx context.Context, session *entity.Session, req *TurnRequest) *TurnResponse {
	verdict := d.checker.Check(ctx, req.Date, req.Time, d.now())
	d.metrics.AvailabilityChecks.WithLabelValues(verdict.Kind).Inc()
	session.LastVerdict = verdict
	return &TurnResponse{
		Reply:   templates.AvailabilityReply(verdict),
		Verdict: verdict,
	}
}

func (d *Dispatcher) createReservation(ctx context.Context, session *entity.Session, req *TurnRequest) *TurnResponse {
	phone := utils.NormalizePhone(req.Phone)

	// Collected fields stick to the session even when the turn is still
	// missing something; a known phone moves the session to identified
	if req.Name != "" {
		session.Name = req.Name
	}
	if req.Date != "" {
		session.Date = req.Date
	}
	if req.Time != "" {
		session.Time = req.Time
	}
	if req.Guests > 0 {
		session.Guests = req.Guests
	}
	if phone != "" {
		session.Phone = phone
		if session.State == entity.StateIdle {
			session.State = entity.StateIdentified
		}
	}

	switch {
	case req.Name == "":
		return &TurnResponse{Reply: templates.MissingField("name")}
	case phone == "":
		return &TurnResponse{Reply: templates.MissingField("phone number")}
	case req.Date == "":
		return &TurnResponse{Reply: templates.MissingField("date")}
	case req.Time == "":
		return &TurnResponse{Reply: templates.MissingField("time")}
	case req.Guests <= 0:
		return &TurnResponse{Reply: templates.MissingField("number of guests")}
	}

	hoursCaveat := false
	if d.enforceGate {
		verdict := session.LastVerdict
		if verdict == nil || verdict.DateText != req.Date || verdict.TimeText != req.Time {
			// Caller never checked this slot; run the check inline
			verdict = d.checker.Check(ctx, req.Date, req.Time, d.now())
			d.metrics.AvailabilityChecks.WithLabelValues(verdict.Kind).Inc()
			session.LastVerdict = verdict
		}
		switch verdict.Kind {
		case entity.VerdictClosed, entity.VerdictUnparseable:
			return &TurnResponse{Reply: templates.AvailabilityReply(verdict), Verdict: verdict}
		case entity.VerdictUnverifiable:
			hoursCaveat = true
		}
	}

	now := d.now()
	record := &entity.Reservation{
		Name:      req.Name,
		Phone:     phone,
		Date:      canonicalizeDate(req.Date, now),
		Time:      canonicalizeClock(req.Time, now),
		Guests:    req.Guests,
		CreatedAt: now,
	}

	switch d.duplicatePolicy {
	case DuplicateReject:
		existing, err := d.store.FindByPhone(ctx, phone)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			d.logger.Error("Duplicate check failed", "phone", phone, "error", err)
			d.metrics.ErrorsCount.WithLabelValues("create").Inc()
			return &TurnResponse{Reply: templates.StorageApology()}
		}
		if existing != nil {
			return &TurnResponse{Reply: templates.AlreadyBooked(phone)}
		}
	case DuplicateOverwrite:
		if err := d.store.DeleteByPhone(ctx, phone); err != nil && !errors.Is(err, entity.ErrNotFound) {
			d.logger.Error("Overwrite delete failed", "phone", phone, "error", err)
			d.metrics.ErrorsCount.WithLabelValues("create").Inc()
			return &TurnResponse{Reply: templates.StorageApology()}
		}
	}

	if err := d.store.Create(ctx, record); err != nil {
		d.logger.Error("Reservation create failed", "phone", phone, "error", err)
		d.metrics.ErrorsCount.WithLabelValues("create").Inc()
		return &TurnResponse{Reply: templates.StorageApology()}
	}
	d.metrics.ReservationsCreated.Inc()

	session.LoadReservation(record)
	d.logger.Info("Reservation created", "session", session.ID, "phone", phone, "date", record.Date)

	if err := d.frontdeskRepo.NotifyCreated(ctx, record); err != nil {
		// Staff notification is best-effort only
		d.logger.Warn("Front desk notification failed", "error", err)
	}

	return &TurnResponse{Reply: templates.ReservationCreated(record, hoursCaveat)}
}

func (d *Dispatcher) cancelReservation(ctx context.Context, session *entity.Session, req *TurnRequest) *TurnResponse {
	phone := utils.NormalizePhone(req.Phone)
	if phone == "" {
		phone = session.Phone
	}
	if phone == "" {
		return &TurnResponse{Reply: templates.MissingField("phone number")}
	}

	err := d.store.DeleteByPhone(ctx, phone)
	if errors.Is(err, entity.ErrNotFound) {
		return &TurnResponse{Reply: templates.NothingToCancel()}
	}
	if err != nil {
		d.logger.Error("Reservation delete failed", "phone", phone, "error", err)
		d.metrics.ErrorsCount.WithLabelValues("cancel").Inc()
		return &TurnResponse{Reply: templates.StorageApology()}
	}
	d.metrics.ReservationsCancelled.Inc()

	if session.Phone == phone {
		session.Reset()
	}
	d.logger.Info("Reservation cancelled", "session", session.ID, "phone", phone)

	if err := d.frontdeskRepo.NotifyCancelled(ctx, phone); err != nil {
		d.logger.Warn("Front desk notification failed", "error", err)
	}

	return &TurnResponse{Reply: templates.ReservationCancelled()}
}

func (d *Dispatcher) reservationDetails(session *entity.Session) *TurnResponse {
	if !session.HasReservation() {
		return &TurnResponse{Reply: templates.NoReservationDetails()}
	}
	record := &entity.Reservation{
		Name:   session.Name,
		Phone:  session.Phone,
		Date:   session.Date,
		Time:   session.Time,
		Guests: session.Guests,
	}
	return &TurnResponse{Reply: templates.CurrentReservation(record)}
}

func (d *Dispatcher) answerQuestion(ctx context.Context, req *TurnRequest) *TurnResponse {
	answer, err := d.knowledgeRepo.Ask(ctx, req.Utterance)
	if err != nil {
		d.logger.Error("Knowledge source query failed", "error", err)
		d.metrics.ErrorsCount.WithLabelValues("question").Inc()
		return &TurnResponse{Reply: templates.KnowledgeApology()}
	}
	return &TurnResponse{Reply: answer}
}

// routeUnrecognized applies the binary routing policy: a session with no
// known phone is steered toward the lookup-or-book choice, an identified
// session gets a generic contextual reply.
func (d *Dispatcher) routeUnrecognized(session *entity.Session, req *TurnRequest) *TurnResponse {
	if !session.HasReservation() {
		return &TurnResponse{Reply: templates.SteerNewGuest()}
	}
	return &TurnResponse{Reply: templates.GenericAck(session.Name)}
}

// canonicalizeDate stores parseable dates as YYYY-MM-DD and leaves anything
// else as the guest said it
func canonicalizeDate(text string, now time.Time) string {
	if t, err := utils.ResolveDate(text, now); err == nil {
		return utils.CanonicalDate(t)
	}
	return text
}

// canonicalizeClock stores parseable times in "3:04 PM" form and leaves
// anything else as the guest said it
func canonicalizeClock(text string, now time.Time) string {
	if t, err := utils.ResolveClock(text, now); err == nil {
		return utils.CanonicalClock(t)
	}
	return text
}
