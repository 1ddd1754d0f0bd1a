package integration

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"payment-resolver/internal/adapter/chain"
	httpHandler "payment-resolver/internal/adapter/http/handler"
	"payment-resolver/internal/adapter/http/middleware"
	"payment-resolver/internal/adapter/signer"
	redisStorage "payment-resolver/internal/adapter/storage/redis"
	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/service"
	"payment-resolver/pkg/bip70"

	"github.com/alicebob/miniredis/v2"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAESKey    = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	testSite      = "resolver.test"
	adminUser     = "admin"
	adminPassword = "correct horse battery staple"
)

var testParams = &chaincfg.MainNetParams

// testApp runs the full HTTP stack against miniredis and a fake node.
type testApp struct {
	server  *httptest.Server
	logRDB  *goredis.Client
	node    *fakeNode
	builder *service.CacheBuilder
	janitor func(maxAge time.Duration) *service.Janitor
	owner   *btcec.PrivateKey
	admin   *btcec.PrivateKey
	token   string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), DB: 1})
	cacheRDB := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), DB: 14})
	logRDB := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), DB: 5})
	t.Cleanup(func() {
		_ = rdb.Close()
		_ = cacheRDB.Close()
		_ = logRDB.Close()
	})

	log := zerolog.Nop()
	node := newFakeNode()

	repo := redisStorage.NewIdentityStore(rdb)
	branches := redisStorage.NewBranchStore(rdb)
	queue := redisStorage.NewPRRQueue(rdb)
	returns := redisStorage.NewReturnPRStore(rdb)
	invoices := redisStorage.NewInvoiceMetaStore(rdb)
	payments := redisStorage.NewPaymentMetaStore(rdb)
	addrCache := redisStorage.NewAddressCache(cacheRDB, node, 0)

	encSvc, err := service.NewAESEncryptionService(testAESKey)
	require.NoError(t, err)
	hashSvc := service.NewArgon2HashServiceWithParams(service.Argon2Params{
		Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16,
	})
	passwordHash, err := hashSvc.Hash(adminPassword)
	require.NoError(t, err)
	tokenSvc := service.NewJWTTokenService("integration-secret-at-least-32-bytes", time.Hour, "payment-resolver")

	prSigner := signer.NewLocalSigner(encSvc)
	prLog := redisStorage.NewPaymentRequestLog(logRDB, log)

	ownerKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	adminKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ResolverSvc: service.NewResolverService(repo, branches, addrCache, invoices, prSigner, prLog, testParams,
			service.ResolverConfig{SiteURL: testSite, MaxDerivationAttempts: 50, DefaultExpiration: 15 * time.Minute}, log),
		PaymentSvc: service.NewPaymentService(invoices, payments, node, testParams,
			service.PaymentConfig{MaxSize: 50000, SubmitRetries: 1, MetaRetention: time.Hour}, log),
		StoreForwardSvc: service.NewStoreForwardService(repo, branches,
			service.StoreForwardConfig{SiteURL: testSite, PresignedPRLimit: 2, MaxPRSize: 50000}, log),
		PRRSvc:         service.NewPRRService(repo, queue, returns, nil, testSite, log),
		AdminSvc:       service.NewAdminService(repo, branches, prSigner, log),
		AuthSvc:        service.NewAuthService(adminUser, passwordHash, hashSvc, tokenSvc),
		AuditSvc:       service.NewAuditService(nil, log),
		TokenSvc:       tokenSvc,
		SigSvc:         service.NewSecp256k1SignatureService(),
		Repo:           repo,
		RateLimiter:    redisStorage.NewRateLimitStore(rdb),
		RateLimitRules: middleware.RateLimitRules(60, 10),
		AdminPublicKey: pubHex(adminKey),
		SiteURL:        testSite,
		MaxBodyBytes:   1 << 20,
		Logger:         log,
	})

	newJanitor := func(maxAge time.Duration) *service.Janitor {
		return service.NewJanitor(queue, returns, invoices, payments, maxAge, maxAge, log)
	}

	app := &testApp{
		server:  httptest.NewServer(router),
		logRDB:  logRDB,
		node:    node,
		builder: service.NewCacheBuilder(node, addrCache, testParams, 2, 2, log),
		janitor: newJanitor,
		owner:   ownerKey,
		admin:   adminKey,
	}
	t.Cleanup(app.server.Close)
	return app
}

func pubHex(key *btcec.PrivateKey) string {
	return hex.EncodeToString(key.PubKey().SerializeCompressed())
}

// do sends a request. When key is set the request carries X-Identity and a
// DER X-Signature over the full URL followed by the body.
func (a *testApp) do(t *testing.T, method, path string, body []byte, key *btcec.PrivateKey, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	target := a.server.URL + path

	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if key != nil {
		digest := sha1.Sum(append([]byte(target), body...))
		req.Header.Set(domain.HeaderIdentity, pubHex(key))
		req.Header.Set(domain.HeaderSignature, hex.EncodeToString(ecdsa.Sign(key, digest[:]).Serialize()))
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": adminUser, "password": adminPassword})
	resp, raw := a.do(t, http.MethodPost, "/api/login", body, nil, map[string]string{"Content-Type": "application/json"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	a.token = decode(t, raw)["token"].(string)
	require.NotEmpty(t, a.token)
}

// createRecord creates an endpoint through the admin API and returns its id.
func (a *testApp) createRecord(t *testing.T, fields map[string]interface{}) string {
	t.Helper()
	if a.token == "" {
		a.login(t)
	}
	body, err := json.Marshal(fields)
	require.NoError(t, err)
	resp, raw := a.do(t, http.MethodPost, "/api", body, nil, map[string]string{
		"Authorization": "Bearer " + a.token,
		"Content-Type":  "application/json",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode(t, raw)["id"].(string)
}

func testAddress(t *testing.T, seed byte) string {
	t.Helper()
	addr, err := btcutil.NewAddressPubKeyHash(bytes.Repeat([]byte{seed}, 20), testParams)
	require.NoError(t, err)
	return addr.EncodeAddress()
}

// payingTx builds a transaction with one dummy input and an output per script.
func payingTx(outputs ...bip70.Output) *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{0x01}, 0), nil, nil))
	for _, o := range outputs {
		tx.AddTxOut(wire.NewTxOut(int64(o.Amount), o.Script))
	}
	return tx
}

func newCert(t *testing.T) (certPEM, keyPEM string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(7),
		Subject:      pkix.Name{CommonName: testSite},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	certPEM = string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
	keyPEM = string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}))
	return certPEM, keyPEM
}

func TestHealthAndIndex(t *testing.T) {
	app := newTestApp(t)

	resp, raw := app.do(t, http.MethodGet, "/health", nil, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decode(t, raw)["status"])

	resp, raw = app.do(t, http.MethodGet, "/", nil, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), testSite+"/resolve/")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestResolveStaticAddress(t *testing.T) {
	app := newTestApp(t)
	addr := testAddress(t, 0x11)
	id := app.createRecord(t, map[string]interface{}{"wallet_address": addr})

	resp, raw := app.do(t, http.MethodGet, "/resolve/"+id, nil, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "bitcoin:"+addr, string(raw))

	resp, raw = app.do(t, http.MethodGet, "/resolve/unknown", nil, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, decode(t, raw)["success"])
}

func TestResolveBIP32SkipsUsedAddresses(t *testing.T) {
	app := newTestApp(t)

	seed := bytes.Repeat([]byte{0x42}, 32)
	master, err := hdkeychain.NewMaster(seed, testParams)
	require.NoError(t, err)
	xpub, err := master.Neuter()
	require.NoError(t, err)

	derive := func(i uint32) string {
		addr, err := chain.DeriveAddress(xpub.String(), testParams, i)
		require.NoError(t, err)
		return addr
	}

	id := app.createRecord(t, map[string]interface{}{
		"bip32_enabled":     true,
		"master_public_key": xpub.String(),
	})

	// Index 1 has already been paid on chain.
	app.node.addBlock(payingTx())
	app.node.addBlock(payingTx(bip70.Output{Amount: 5000, Script: bip70.DestinationScript(derive(1), testParams)}))

	resp, raw := app.do(t, http.MethodGet, "/resolve/"+id, nil, nil, nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Address cache not up to date. Please try again later.", decode(t, raw)["message"])

	height, err := app.builder.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), height)

	resp, raw = app.do(t, http.MethodGet, "/resolve/"+id, nil, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "bitcoin:"+derive(0), string(raw))

	resp, raw = app.do(t, http.MethodGet, "/resolve/"+id, nil, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "bitcoin:"+derive(2), string(raw))

	// Branch listing is limited to the configured admin key.
	resp, raw = app.do(t, http.MethodGet, "/branches/"+id, nil, app.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, []interface{}{0.0}, decode(t, raw)["branches"])

	resp, _ = app.do(t, http.MethodGet, "/branches/"+id, nil, app.owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPaymentRequestAndPayment(t *testing.T) {
	app := newTestApp(t)
	addr := testAddress(t, 0x22)
	certPEM, keyPEM := newCert(t)

	id := app.createRecord(t, map[string]interface{}{
		"wallet_address":  addr,
		"bip70_enabled":   true,
		"x509_cert":       certPEM,
		"private_key":     keyPEM,
		"memo":            "order 42",
		"auth_public_key": pubHex(app.owner),
	})

	// The stored key is sealed and never returned.
	resp, raw := app.do(t, http.MethodGet, "/api/"+id, nil, nil, map[string]string{"Authorization": "Bearer " + app.token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode(t, raw)["result"].(map[string]interface{})["private_key"])

	// Without an explicit request the client gets a BIP72 URI pointing back here.
	resp, raw = app.do(t, http.MethodGet, "/resolve/"+id+"?amount=2", nil, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, strings.HasPrefix(string(raw), "bitcoin:"+addr+"?amount=2&r="), string(raw))

	resp, raw = app.do(t, http.MethodGet, "/resolve/"+id+"?amount=2", nil, nil, map[string]string{"Accept": domain.MIMEPaymentRequest})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, domain.MIMEPaymentRequest, resp.Header.Get("Content-Type"))

	var pr bip70.PaymentRequest
	require.NoError(t, pr.Unmarshal(raw))
	require.NoError(t, pr.VerifySignature())
	details, err := pr.Details()
	require.NoError(t, err)
	assert.Equal(t, "order 42", details.Memo)
	assert.Equal(t, "https://"+testSite+"/payment/"+id, details.PaymentURL)
	require.Len(t, details.Outputs, 1)
	assert.Equal(t, uint64(2*domain.SatoshiPerUnit), details.Outputs[0].Amount)

	keys, err := app.logRDB.Keys(context.Background(), addr+"-*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	payHeaders := map[string]string{"Content-Type": domain.MIMEPayment, "Accept": domain.MIMEPaymentACK}

	// Underpaying is rejected before anything reaches the node.
	short := details.Outputs[0]
	short.Amount--
	underpaid := bip70.Payment{MerchantData: details.MerchantData, Transactions: [][]byte{serialize(t, payingTx(short))}}
	resp, raw = app.do(t, http.MethodPost, "/payment/"+id, underpaid.Marshal(), nil, payHeaders)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
	assert.Zero(t, app.node.submittedCount())

	tx := payingTx(details.Outputs[0])
	refundScript := bip70.DestinationScript(testAddress(t, 0x33), testParams)
	payment := bip70.Payment{
		MerchantData: details.MerchantData,
		Transactions: [][]byte{serialize(t, tx)},
		RefundTo:     []bip70.Output{{Script: refundScript}},
		Memo:         "thanks",
	}
	resp, raw = app.do(t, http.MethodPost, "/payment/"+id, payment.Marshal(), nil, payHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, domain.MIMEPaymentACK, resp.Header.Get("Content-Type"))

	var ack bip70.PaymentACK
	require.NoError(t, ack.Unmarshal(raw))
	assert.Equal(t, "thanks", ack.Payment.Memo)
	assert.Equal(t, 1, app.node.submittedCount())

	// Refund data is available to the record owner only.
	refundPath := "/payment/" + id + "/refund/" + tx.TxHash().String()
	resp, raw = app.do(t, http.MethodGet, refundPath, nil, app.owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	body := decode(t, raw)
	assert.Equal(t, "thanks", body["memo"])
	assert.Equal(t, []interface{}{hex.EncodeToString(refundScript)}, body["refund_to"])

	resp, _ = app.do(t, http.MethodGet, refundPath, nil, app.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func serialize(t *testing.T, tx *wire.MsgTx) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	return buf.Bytes()
}

func TestStoreAndForward(t *testing.T) {
	app := newTestApp(t)

	resp, raw := app.do(t, http.MethodPost, "/sf", nil, app.owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	reg := decode(t, raw)
	id := reg["id"].(string)
	assert.Equal(t, "https://"+testSite+"/resolve/"+id, reg["endpoint"])

	presigned := func(seed byte) string {
		raw, err := bip70.Build(bip70.Request{
			Destination: testAddress(t, seed),
			Amount:      1,
			Time:        time.Now(),
		}, testParams)
		require.NoError(t, err)
		return hex.EncodeToString(raw)
	}
	add, _ := json.Marshal(map[string][]string{
		"presigned_payment_requests": {presigned(0x01), presigned(0x02), presigned(0x03)},
	})

	resp, raw = app.do(t, http.MethodPut, "/sf/"+id, add, app.owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 2.0, decode(t, raw)["payment_requests_added"])

	resp, raw = app.do(t, http.MethodGet, "/sf/"+id, nil, app.owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 2.0, decode(t, raw)["payment_request_count"])

	// Another key cannot touch the endpoint, and a bad signature is refused.
	resp, _ = app.do(t, http.MethodGet, "/sf/"+id, nil, app.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = app.do(t, http.MethodGet, "/sf/"+id, nil, nil, map[string]string{
		domain.HeaderIdentity:  pubHex(app.owner),
		domain.HeaderSignature: strings.Repeat("00", 64),
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SEC_004", decode(t, raw)["error_code"])

	resp, _ = app.do(t, http.MethodDelete, "/sf/"+id, nil, app.owner, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = app.do(t, http.MethodGet, "/sf/"+id, nil, app.owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPaymentRequestRequestRelay(t *testing.T) {
	app := newTestApp(t)
	id := app.createRecord(t, map[string]interface{}{
		"prr_only":        true,
		"auth_public_key": pubHex(app.owner),
	})

	resp, _ := app.do(t, http.MethodGet, "/resolve/"+id, nil, nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))

	sender, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	resp, raw := app.do(t, http.MethodPost, "/resolve/"+id, []byte(`{"amount": 1500}`), sender, nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode, string(raw))
	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "https://"+testSite+"/pr/"), location)
	prrID := strings.TrimPrefix(location, "https://"+testSite+"/pr/")

	resp, _ = app.do(t, http.MethodGet, "/pr/"+prrID, nil, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = app.do(t, http.MethodGet, "/prr/"+id, nil, app.owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	list := decode(t, raw)
	assert.Equal(t, 1.0, list["count"])
	queued := list["requests"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, prrID, queued["id"])
	assert.Equal(t, pubHex(sender), queued["sender_pubkey"])
	assert.Equal(t, 1500.0, queued["amount"])

	ready, _ := json.Marshal(map[string]interface{}{
		"ready_requests": []map[string]string{
			{"id": prrID, "receiver_pubkey": pubHex(sender), "encrypted_payment_request": "c2VhbGVk"},
			{"id": "incomplete"},
		},
	})
	resp, raw = app.do(t, http.MethodPost, "/prr/"+id, ready, app.owner, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	result := decode(t, raw)
	assert.Equal(t, 1.0, result["accept_count"])
	assert.Contains(t, result["failures"], "incomplete")

	resp, raw = app.do(t, http.MethodGet, "/pr/"+prrID, nil, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	rpr := decode(t, raw)
	assert.Equal(t, "c2VhbGVk", rpr["encrypted_payment_request"])
	assert.Equal(t, pubHex(sender), rpr["receiver_pubkey"])

	resp, raw = app.do(t, http.MethodGet, "/prr/"+id, nil, app.owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.0, decode(t, raw)["count"])
}

func TestCleanupPurgesExpiredData(t *testing.T) {
	app := newTestApp(t)
	id := app.createRecord(t, map[string]interface{}{
		"prr_only":        true,
		"auth_public_key": pubHex(app.owner),
	})

	resp, raw := app.do(t, http.MethodPost, "/resolve/"+id, []byte(`{"amount": 1}`), app.owner, nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode, string(raw))

	stats, err := app.janitor(time.Hour).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.PRRs)

	// A negative age makes every stored record stale.
	stats, err = app.janitor(-time.Second).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PRRs)

	resp, raw = app.do(t, http.MethodGet, "/prr/"+id, nil, app.owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 0.0, decode(t, raw)["count"])
}

func TestAdminAPI(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.do(t, http.MethodGet, "/api", nil, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := json.Marshal(map[string]string{"username": adminUser, "password": "wrong"})
	resp, _ = app.do(t, http.MethodPost, "/api/login", body, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	id := app.createRecord(t, map[string]interface{}{"wallet_address": testAddress(t, 0x44)})
	auth := map[string]string{"Authorization": "Bearer " + app.token, "Content-Type": "application/json"}

	resp, raw := app.do(t, http.MethodGet, "/api", nil, nil, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, decode(t, raw)["count"])

	resp, raw = app.do(t, http.MethodPut, "/api/"+id, []byte(`{"memo": "updated"}`), nil, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "updated", decode(t, raw)["result"].(map[string]interface{})["memo"])

	resp, raw = app.do(t, http.MethodPut, "/api/"+id, []byte(`{"not_a_field": 1}`), nil, auth)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unknown key submitted", decode(t, raw)["message"])

	resp, _ = app.do(t, http.MethodDelete, "/api/"+id+"/privkey", nil, nil, auth)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = app.do(t, http.MethodDelete, "/api/"+id, nil, nil, auth)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = app.do(t, http.MethodGet, "/api/"+id, nil, nil, auth)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
