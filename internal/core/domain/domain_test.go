package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdObject_Defaults(t *testing.T) {
	o := NewIdObject("abc")

	assert.Equal(t, "abc", o.ID)
	assert.False(t, o.BIP32Enabled)
	assert.False(t, o.BIP70Enabled)
	assert.Nil(t, o.BIP70StaticAmount)
	assert.Nil(t, o.Expires)
	assert.NotNil(t, o.PresignedPaymentRequests)
	assert.False(t, o.HasPresigned())
}

func TestIdObject_Redacted(t *testing.T) {
	o := NewIdObject("abc")
	o.PrivateKey = "secret"
	o.PresignedPaymentRequests = []string{"00"}

	r := o.Redacted()
	assert.Empty(t, r.PrivateKey)
	assert.Equal(t, "secret", o.PrivateKey)

	r.PresignedPaymentRequests[0] = "ff"
	assert.Equal(t, "00", o.PresignedPaymentRequests[0])
}

func TestIdObject_ApplyUpdate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		check   func(t *testing.T, o *IdObject)
		wantErr string
	}{
		{
			name: "sets known fields",
			body: `{"bip70_enabled": true, "wallet_address": "1abc", "bip70_static_amount": 0}`,
			check: func(t *testing.T, o *IdObject) {
				assert.True(t, o.BIP70Enabled)
				assert.Equal(t, "1abc", o.WalletAddress)
				require.NotNil(t, o.BIP70StaticAmount)
				assert.Equal(t, int64(0), *o.BIP70StaticAmount)
			},
		},
		{
			name: "ignores id",
			body: `{"id": "other", "memo": "hi"}`,
			check: func(t *testing.T, o *IdObject) {
				assert.Equal(t, "orig", o.ID)
				assert.Equal(t, "hi", o.Memo)
			},
		},
		{
			name: "keeps private key when empty",
			body: `{"private_key": ""}`,
			check: func(t *testing.T, o *IdObject) {
				assert.Equal(t, "stored-key", o.PrivateKey)
			},
		},
		{
			name: "replaces private key when set",
			body: `{"private_key": "new-key"}`,
			check: func(t *testing.T, o *IdObject) {
				assert.Equal(t, "new-key", o.PrivateKey)
			},
		},
		{
			name:    "rejects unknown key",
			body:    `{"bogus": 1}`,
			wantErr: "bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewIdObject("orig")
			o.PrivateKey = "stored-key"

			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(tt.body), &raw))

			err := o.ApplyUpdate(raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				var unknown *ErrUnknownField
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, tt.wantErr, unknown.Key)
				return
			}
			require.NoError(t, err)
			tt.check(t, o)
		})
	}
}

func TestExpiry_JSON(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	var rel Expiry
	require.NoError(t, json.Unmarshal([]byte(`3600`), &rel))
	assert.Equal(t, now.Unix()+3600, rel.Resolve(now))

	var abs Expiry
	require.NoError(t, json.Unmarshal([]byte(`"2030-01-02T03:04:05Z"`), &abs))
	assert.Equal(t, time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC).Unix(), abs.Resolve(now))

	out, err := json.Marshal(rel)
	require.NoError(t, err)
	assert.JSONEq(t, `3600`, string(out))

	out, err = json.Marshal(abs)
	require.NoError(t, err)
	assert.JSONEq(t, `"2030-01-02T03:04:05Z"`, string(out))

	var bad Expiry
	assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &bad))
}

func TestPRR_IsStale(t *testing.T) {
	now := time.Now()
	p := &PaymentRequestRequest{SubmitDate: now.Add(-48 * time.Hour).Unix()}

	assert.True(t, p.IsStale(now, 24*time.Hour))
	assert.False(t, p.IsStale(now, 72*time.Hour))

	r := &ReturnPaymentRequest{SubmitDate: now.Unix()}
	assert.False(t, r.IsStale(now, time.Hour))
}

func TestInvoiceMeta_ExpectedOutputs(t *testing.T) {
	m, err := NewInvoiceMeta("k", 10, map[string]int64{"1addr": 500})
	require.NoError(t, err)

	out, err := m.ExpectedOutputs()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"1addr": 500}, out)

	// each call returns an independent map
	delete(out, "1addr")
	again, err := m.ExpectedOutputs()
	require.NoError(t, err)
	assert.Len(t, again, 1)

	bad := &InvoiceMeta{PaymentValidationData: "not json"}
	_, err = bad.ExpectedOutputs()
	assert.Error(t, err)
}

func TestMeta_IsExpired(t *testing.T) {
	now := time.Now()
	assert.True(t, (&InvoiceMeta{ExpirationDate: now.Unix() - 1}).IsExpired(now))
	assert.False(t, (&PaymentMeta{ExpirationDate: now.Unix() + 60}).IsExpired(now))
}

func TestNewHexToken(t *testing.T) {
	id := NewHexToken(1)
	assert.Regexp(t, "^[0-9a-f]{32}$", id)
	assert.NotEqual(t, id, NewHexToken(1))
	assert.Len(t, NewHexToken(3), 96)
}
