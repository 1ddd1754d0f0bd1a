package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type prrTestDeps struct {
	svc      *PRRServiceImpl
	repo     *mocks.MockIdentityRepository
	queue    *mocks.MockPRRQueue
	returns  *mocks.MockReturnPRStore
	notifier *mocks.MockNotificationService
	ctrl     *gomock.Controller
	now      time.Time
}

func setupPRRService(t *testing.T) *prrTestDeps {
	ctrl := gomock.NewController(t)
	d := &prrTestDeps{
		repo:     mocks.NewMockIdentityRepository(ctrl),
		queue:    mocks.NewMockPRRQueue(ctrl),
		returns:  mocks.NewMockReturnPRStore(ctrl),
		notifier: mocks.NewMockNotificationService(ctrl),
		ctrl:     ctrl,
		now:      time.Unix(1_700_000_000, 0),
	}
	d.svc = NewPRRService(d.repo, d.queue, d.returns, d.notifier, testSite, zerolog.Nop())
	d.svc.now = func() time.Time { return d.now }
	return d
}

func prrOnly(id string) *domain.IdObject {
	obj := domain.NewIdObject(id)
	obj.PRROnly = true
	return obj
}

// ==================== Submit ====================

func TestPRRService_Submit(t *testing.T) {
	d := setupPRRService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.repo.EXPECT().Get(ctx, "abc").Return(prrOnly("abc"), nil)
	var queued *domain.PaymentRequestRequest
	d.queue.EXPECT().Add(ctx, "abc", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, prr *domain.PaymentRequestRequest) error {
		queued = prr
		return nil
	})

	loc, err := d.svc.Submit(ctx, "abc", "02sender", []byte(`{"amount":"75","notification_url":"https://notify.me/x","x509_cert":"cert","signature":"sig"}`))
	require.NoError(t, err)
	require.NotNil(t, queued)
	assert.Len(t, queued.ID, 96)
	assert.Equal(t, "https://resolver.example.com/pr/"+queued.ID, loc)
	assert.Equal(t, "02sender", queued.SenderPubKey)
	assert.Equal(t, int64(75), queued.Amount)
	assert.Equal(t, "https://notify.me/x", queued.NotificationURL)
	assert.Equal(t, d.now.Unix(), queued.SubmitDate)
}

func TestPRRService_Submit_Errors(t *testing.T) {
	tests := []struct {
		name string
		obj  *domain.IdObject
		err  error
		body string
		code string
		msg  string
	}{
		{"store error", nil, errors.New("down"), `{"amount":1}`, "SYS_005", "Exception Occurred"},
		{"unknown id", nil, nil, `{"amount":1}`, "SEC_005", "ID Not Recognized"},
		{"not prr endpoint", domain.NewIdObject("abc"), nil, `{"amount":1}`, "REQ_001", "Invalid PaymentRequest Request Endpoint"},
		{"no body", prrOnly("abc"), nil, ``, "REQ_001", "Invalid Request"},
		{"null body", prrOnly("abc"), nil, `null`, "REQ_001", "Invalid Request"},
		{"bad amount", prrOnly("abc"), nil, `{"amount":"ten"}`, "REQ_001", "Invalid Request"},
		{"cert without signature", prrOnly("abc"), nil, `{"x509_cert":"cert"}`, "REQ_001", "Requests including x509 cert must include signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupPRRService(t)
			defer d.ctrl.Finish()

			d.repo.EXPECT().Get(gomock.Any(), "abc").Return(tt.obj, tt.err)

			_, err := d.svc.Submit(context.Background(), "abc", "02sender", []byte(tt.body))
			requireCode(t, err, tt.code)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestPRRService_Submit_QueueFailure(t *testing.T) {
	d := setupPRRService(t)
	defer d.ctrl.Finish()

	d.repo.EXPECT().Get(gomock.Any(), "abc").Return(prrOnly("abc"), nil)
	d.queue.EXPECT().Add(gomock.Any(), "abc", gomock.Any()).Return(errors.New("down"))

	_, err := d.svc.Submit(context.Background(), "abc", "02sender", []byte(`{"amount":1}`))
	requireCode(t, err, "SYS_005")
}

// ==================== List ====================

func TestPRRService_List(t *testing.T) {
	d := setupPRRService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.queue.EXPECT().List(ctx, "abc").Return(nil, nil)
	prrs, err := d.svc.List(ctx, "abc")
	require.NoError(t, err)
	assert.NotNil(t, prrs)
	assert.Empty(t, prrs)

	d.queue.EXPECT().List(ctx, "abc").Return(nil, errors.New("down"))
	_, err = d.svc.List(ctx, "abc")
	requireCode(t, err, "SYS_005")
}

// ==================== SubmitReturn ====================

func TestPRRService_SubmitReturn_AllAccepted(t *testing.T) {
	d := setupPRRService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	withURL := &domain.PaymentRequestRequest{ID: "p1", NotificationURL: "https://notify.me/x"}
	d.queue.EXPECT().Get(ctx, "abc", "p1").Return(withURL, nil)
	d.queue.EXPECT().Get(ctx, "abc", "p2").Return(nil, errors.New("ignored"))
	d.returns.EXPECT().Put(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, rpr *domain.ReturnPaymentRequest) error {
		assert.Equal(t, d.now.Unix(), rpr.SubmitDate)
		return nil
	}).Times(2)
	d.queue.EXPECT().Delete(ctx, "abc", "p1").Return(nil)
	d.queue.EXPECT().Delete(ctx, "abc", "p2").Return(errors.New("logged only"))
	d.notifier.EXPECT().NotifyFulfilled(ctx, withURL, "https://resolver.example.com/pr/p1").Return(nil)

	res, err := d.svc.SubmitReturn(ctx, "abc", []byte(`{"ready_requests":[
		{"id":"p1","receiver_pubkey":"02r","encrypted_payment_request":"enc1"},
		{"id":"p2","receiver_pubkey":"02r","encrypted_payment_request":"enc2"}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, res.AcceptCount)
	assert.Nil(t, res.Failures)
}

func TestPRRService_SubmitReturn_PartialFailure(t *testing.T) {
	d := setupPRRService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.queue.EXPECT().Get(ctx, "abc", "p1").Return(nil, nil)
	d.queue.EXPECT().Get(ctx, "abc", "p3").Return(nil, nil)
	d.returns.EXPECT().Put(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, rpr *domain.ReturnPaymentRequest) error {
		if rpr.ID == "p3" {
			return errors.New("down")
		}
		return nil
	}).Times(2)
	d.queue.EXPECT().Delete(ctx, "abc", "p1").Return(nil)

	res, err := d.svc.SubmitReturn(ctx, "abc", []byte(`{"ready_requests":[
		{"id":"p1","receiver_pubkey":"02r","encrypted_payment_request":"enc1"},
		{"id":"p2","receiver_pubkey":"02r"},
		{"id":"p3","receiver_pubkey":"02r","encrypted_payment_request":"enc3"},
		{"receiver_pubkey":"02r"}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.AcceptCount)
	assert.Equal(t, map[string][]string{
		"p2":                {missingReadyFields},
		"p3":                {"Unable to Process Return PaymentRequest"},
		"ready_requests[3]": {missingReadyFields},
	}, res.Failures)
}

func TestPRRService_SubmitReturn_BadList(t *testing.T) {
	for _, body := range []string{`nope`, `{}`, `{"ready_requests":[]}`, `{"ready_requests":"x"}`} {
		t.Run(body, func(t *testing.T) {
			d := setupPRRService(t)
			defer d.ctrl.Finish()

			_, err := d.svc.SubmitReturn(context.Background(), "abc", []byte(body))
			requireCode(t, err, "REQ_001")
		})
	}
}

// ==================== GetReturn ====================

func TestPRRService_GetReturn(t *testing.T) {
	d := setupPRRService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	rpr := &domain.ReturnPaymentRequest{ID: "p1", ReceiverPubKey: "02r", EncryptedPaymentRequest: "enc"}
	d.returns.EXPECT().Get(ctx, "p1").Return(rpr, nil)
	got, err := d.svc.GetReturn(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, rpr, got)

	d.returns.EXPECT().Get(ctx, "p2").Return(nil, nil)
	_, err = d.svc.GetReturn(ctx, "p2")
	requireCode(t, err, "RES_001")
	assert.Contains(t, err.Error(), "PaymentRequest Not Found or Not Yet Ready")

	d.returns.EXPECT().Get(ctx, "p3").Return(nil, errors.New("down"))
	_, err = d.svc.GetReturn(ctx, "p3")
	requireCode(t, err, "SYS_005")
}
