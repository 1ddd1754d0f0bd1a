package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"
	"payment-resolver/internal/core/ports/mocks"
	"payment-resolver/pkg/bip70"

	"github.com/btcsuite/btcd/wire"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type paymentTestDeps struct {
	svc      *PaymentServiceImpl
	invoices *mocks.MockInvoiceMetaStore
	payments *mocks.MockPaymentMetaStore
	node     *mocks.MockBlockchainNode
	ctrl     *gomock.Controller
	sleeps   []time.Duration
	now      time.Time
}

func setupPaymentService(t *testing.T) *paymentTestDeps {
	ctrl := gomock.NewController(t)
	d := &paymentTestDeps{
		invoices: mocks.NewMockInvoiceMetaStore(ctrl),
		payments: mocks.NewMockPaymentMetaStore(ctrl),
		node:     mocks.NewMockBlockchainNode(ctrl),
		ctrl:     ctrl,
		now:      time.Unix(1_700_000_000, 0),
	}
	d.svc = NewPaymentService(d.invoices, d.payments, d.node, testParams, PaymentConfig{
		MaxSize:       50000,
		SubmitRetries: 3,
		SubmitBackoff: 300 * time.Millisecond,
		MetaRetention: 24 * time.Hour,
	}, zerolog.Nop())
	d.svc.now = func() time.Time { return d.now }
	d.svc.sleep = func(dur time.Duration) { d.sleeps = append(d.sleeps, dur) }
	return d
}

type testOutput struct {
	addr  string
	value int64
}

func testTx(t *testing.T, outs ...testOutput) (*wire.MsgTx, []byte) {
	t.Helper()
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: 0}, nil, nil))
	for _, o := range outs {
		tx.AddTxOut(wire.NewTxOut(o.value, bip70.DestinationScript(o.addr, testParams)))
	}
	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	return tx, buf.Bytes()
}

func paymentBody(merchantData string, refund []byte, txs ...[]byte) []byte {
	p := bip70.Payment{
		MerchantData: []byte(merchantData),
		Transactions: txs,
		Memo:         "for order 9",
	}
	if refund != nil {
		p.RefundTo = []bip70.Output{{Script: refund}}
	}
	return p.Marshal()
}

func submission(body []byte) ports.PaymentSubmission {
	return ports.PaymentSubmission{
		ID:          "abc",
		Body:        body,
		ContentType: domain.MIMEPayment,
		Accept:      domain.MIMEPaymentACK,
	}
}

func invoiceFor(t *testing.T, expected map[string]int64) *domain.InvoiceMeta {
	t.Helper()
	meta, err := domain.NewInvoiceMeta("invoice-key", time.Now().Add(time.Hour).Unix(), expected)
	require.NoError(t, err)
	return meta
}

// ==================== Request validation ====================

func TestPaymentService_Process_RequestValidation(t *testing.T) {
	big := bytes.Repeat([]byte{0x01}, 50001)
	atLimit := bytes.Repeat([]byte{0x01}, 50000)

	tests := []struct {
		name string
		sub  ports.PaymentSubmission
		code string
	}{
		{"empty body", submission(nil), "REQ_002"},
		{"wrong content type", ports.PaymentSubmission{Body: []byte{1}, ContentType: "application/json", Accept: domain.MIMEPaymentACK}, "REQ_003"},
		{"wrong accept", ports.PaymentSubmission{Body: []byte{1}, ContentType: domain.MIMEPayment, Accept: "*/*"}, "REQ_004"},
		{"oversized", submission(big), "REQ_005"},
		{"at size limit passes size check", submission(atLimit), "SYS_005"},
		{"unparseable", submission([]byte{0x00}), "SYS_005"},
		{"no merchant data", submission(paymentBody("", nil)), "REQ_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupPaymentService(t)
			defer d.ctrl.Finish()

			_, err := d.svc.Process(context.Background(), tt.sub)
			requireCode(t, err, tt.code)
		})
	}
}

func TestPaymentService_Process_ContentTypeParameters(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	sub := submission(paymentBody("invoice-key", nil))
	sub.ContentType = domain.MIMEPayment + "; charset=binary"
	d.invoices.EXPECT().Get(gomock.Any(), "invoice-key").Return(nil, nil)

	_, err := d.svc.Process(context.Background(), sub)
	requireCode(t, err, "RES_001")
}

func TestPaymentService_Process_InvoiceLookup(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.invoices.EXPECT().Get(ctx, "invoice-key").Return(nil, errors.New("redis down"))
	_, err := d.svc.Process(ctx, submission(paymentBody("invoice-key", nil)))
	requireCode(t, err, "SYS_001")

	d.invoices.EXPECT().Get(ctx, "invoice-key").Return(&domain.InvoiceMeta{Key: "invoice-key", PaymentValidationData: "{not json"}, nil)
	_, err = d.svc.Process(ctx, submission(paymentBody("invoice-key", nil)))
	requireCode(t, err, "REQ_001")
	assert.Contains(t, err.Error(), "Unable to validate Payment.")
}

func TestPaymentService_Process_BadTransaction(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	addr := staticAddress(t, 0x30)
	d.invoices.EXPECT().Get(gomock.Any(), "invoice-key").Return(invoiceFor(t, map[string]int64{addr: 100}), nil)

	_, err := d.svc.Process(context.Background(), submission(paymentBody("invoice-key", nil, []byte{0xde, 0xad})))
	requireCode(t, err, "SYS_005")
}

func TestPaymentService_Process_Unsatisfied(t *testing.T) {
	a, b := staticAddress(t, 0x31), staticAddress(t, 0x32)

	tests := []struct {
		name string
		outs []testOutput
	}{
		{"wrong amount", []testOutput{{a, 99}, {b, 200}}},
		{"missing output", []testOutput{{a, 100}}},
		{"no outputs", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupPaymentService(t)
			defer d.ctrl.Finish()

			d.invoices.EXPECT().Get(gomock.Any(), "invoice-key").Return(invoiceFor(t, map[string]int64{a: 100, b: 200}), nil)
			_, raw := testTx(t, tt.outs...)

			_, err := d.svc.Process(context.Background(), submission(paymentBody("invoice-key", nil, raw)))
			requireCode(t, err, "REQ_006")
		})
	}
}

// ==================== Submission ====================

func TestPaymentService_Process_Success(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	a, b, extra := staticAddress(t, 0x33), staticAddress(t, 0x34), staticAddress(t, 0x35)
	tx1, raw1 := testTx(t, testOutput{a, 100}, testOutput{extra, 5})
	tx2, raw2 := testTx(t, testOutput{b, 200})
	refund := bip70.DestinationScript(extra, testParams)
	body := paymentBody("invoice-key", refund, raw1, raw2)

	meta := invoiceFor(t, map[string]int64{a: 100, b: 200})
	d.invoices.EXPECT().Get(ctx, "invoice-key").Return(meta, nil)
	gomock.InOrder(
		d.node.EXPECT().SendRawTransaction(ctx, gomock.Any()).Return("", errors.New("timeout")),
		d.node.EXPECT().SendRawTransaction(ctx, gomock.Any()).Return(tx1.TxHash().String(), nil),
		d.node.EXPECT().SendRawTransaction(ctx, gomock.Any()).Return(tx2.TxHash().String(), nil),
	)

	var stored []*domain.PaymentMeta
	d.payments.EXPECT().Put(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, m *domain.PaymentMeta) error {
		stored = append(stored, m)
		return nil
	}).Times(2)

	ackBytes, err := d.svc.Process(ctx, submission(body))
	require.NoError(t, err)

	var ack bip70.PaymentACK
	require.NoError(t, ack.Unmarshal(ackBytes))
	assert.Empty(t, ack.Memo)
	assert.Equal(t, []byte("invoice-key"), ack.Payment.MerchantData)
	assert.Len(t, ack.Payment.Transactions, 2)

	assert.Equal(t, []time.Duration{300 * time.Millisecond}, d.sleeps)

	require.Len(t, stored, 2)
	assert.Equal(t, tx1.TxHash().String(), stored[0].TxHash)
	assert.Equal(t, tx2.TxHash().String(), stored[1].TxHash)
	assert.Equal(t, "for order 9", stored[0].Memo)
	assert.Equal(t, []string{hex.EncodeToString(refund)}, stored[0].RefundTo)
	assert.Equal(t, d.now.Add(24*time.Hour).Unix(), stored[0].ExpirationDate)

	expected, err := meta.ExpectedOutputs()
	require.NoError(t, err)
	assert.Len(t, expected, 2, "stored meta is not consumed")
}

func TestPaymentService_Process_TestTransaction(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	a := staticAddress(t, 0x36)
	_, raw := testTx(t, testOutput{a, 100})
	d.invoices.EXPECT().Get(ctx, "invoice-key").Return(invoiceFor(t, map[string]int64{a: 100}), nil)
	d.payments.EXPECT().Put(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, m *domain.PaymentMeta) error {
		assert.Equal(t, domain.TestTxHash, m.TxHash)
		assert.Empty(t, m.RefundTo)
		return nil
	})

	sub := submission(paymentBody("invoice-key", nil, raw))
	sub.TestTransaction = true
	_, err := d.svc.Process(ctx, sub)
	require.NoError(t, err)
}

func TestPaymentService_Process_TestTransactionRepeated(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	a, b := staticAddress(t, 0x39), staticAddress(t, 0x3a)
	_, raw := testTx(t, testOutput{a, 100}, testOutput{b, 250})
	meta := invoiceFor(t, map[string]int64{a: 100, b: 250})
	d.invoices.EXPECT().Get(ctx, "invoice-key").Return(meta, nil).Times(2)
	d.payments.EXPECT().Put(ctx, gomock.Any()).Return(nil).Times(2)

	sub := submission(paymentBody("invoice-key", nil, raw))
	sub.TestTransaction = true

	first, err := d.svc.Process(ctx, sub)
	require.NoError(t, err)
	second, err := d.svc.Process(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var ack bip70.PaymentACK
	require.NoError(t, ack.Unmarshal(second))
	assert.Equal(t, []byte("invoice-key"), ack.Payment.MerchantData)

	expected, err := meta.ExpectedOutputs()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{a: 100, b: 250}, expected)
}

func TestPaymentService_Process_SubmitExhausted(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	a := staticAddress(t, 0x37)
	_, raw := testTx(t, testOutput{a, 100})
	d.invoices.EXPECT().Get(ctx, "invoice-key").Return(invoiceFor(t, map[string]int64{a: 100}), nil)
	d.node.EXPECT().SendRawTransaction(ctx, gomock.Any()).Return("", errors.New("rejected")).Times(3)

	_, err := d.svc.Process(ctx, submission(paymentBody("invoice-key", nil, raw)))
	requireCode(t, err, "SYS_004")
	assert.Len(t, d.sleeps, 2)
}

func TestPaymentService_Process_MetaStoreFailure(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	a := staticAddress(t, 0x38)
	_, raw := testTx(t, testOutput{a, 100})
	d.invoices.EXPECT().Get(ctx, "invoice-key").Return(invoiceFor(t, map[string]int64{a: 100}), nil)
	d.node.EXPECT().SendRawTransaction(ctx, gomock.Any()).Return("hash", nil)
	d.payments.EXPECT().Put(ctx, gomock.Any()).Return(errors.New("down"))

	_, err := d.svc.Process(ctx, submission(paymentBody("invoice-key", nil, raw)))
	requireCode(t, err, "SYS_001")
}

// ==================== RefundAddress ====================

func TestPaymentService_RefundAddress(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.payments.EXPECT().Get(ctx, "hash").Return(&domain.PaymentMeta{
		TxHash:         "hash",
		Memo:           "m",
		RefundTo:       []string{"76a9"},
		ExpirationDate: 123,
	}, nil)
	meta, err := d.svc.RefundAddress(ctx, "hash")
	require.NoError(t, err)
	assert.Equal(t, []string{"76a9"}, meta.RefundTo)
	assert.Zero(t, meta.ExpirationDate)

	d.payments.EXPECT().Get(ctx, "missing").Return(nil, nil)
	_, err = d.svc.RefundAddress(ctx, "missing")
	requireCode(t, err, "RES_001")

	d.payments.EXPECT().Get(ctx, "err").Return(nil, errors.New("down"))
	_, err = d.svc.RefundAddress(ctx, "err")
	requireCode(t, err, "SYS_001")
}
