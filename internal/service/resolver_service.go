package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"payment-resolver/internal/adapter/chain"
	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"
	"payment-resolver/pkg/bip70"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/rs/zerolog"
)

const defaultMaxDerivationAttempts = 1000

// ResolverConfig holds the resolver tunables.
type ResolverConfig struct {
	SiteURL               string // host[:port], scheme is always https
	IPBranching           bool
	MaxDerivationAttempts int
	DefaultExpiration     time.Duration
}

// ResolverServiceImpl implements ports.ResolverService.
type ResolverServiceImpl struct {
	repo     ports.IdentityRepository
	branches ports.BranchIndexStore
	cache    ports.AddressCache
	invoices ports.InvoiceMetaStore
	signer   ports.Signer
	prLog    ports.PaymentRequestLogger
	params   *chaincfg.Params
	cfg      ResolverConfig
	log      zerolog.Logger
	now      func() time.Time
}

// NewResolverService creates a new ResolverServiceImpl.
func NewResolverService(
	repo ports.IdentityRepository,
	branches ports.BranchIndexStore,
	cache ports.AddressCache,
	invoices ports.InvoiceMetaStore,
	signer ports.Signer,
	prLog ports.PaymentRequestLogger,
	params *chaincfg.Params,
	cfg ResolverConfig,
	log zerolog.Logger,
) *ResolverServiceImpl {
	if cfg.MaxDerivationAttempts <= 0 {
		cfg.MaxDerivationAttempts = defaultMaxDerivationAttempts
	}
	return &ResolverServiceImpl{
		repo:     repo,
		branches: branches,
		cache:    cache,
		invoices: invoices,
		signer:   signer,
		prLog:    prLog,
		params:   params,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Resolve walks the resolution decision tree. The first matching branch
// produces either a binary PaymentRequest or a BIP72 URI.
func (s *ResolverServiceImpl) Resolve(ctx context.Context, req ports.ResolveRequest) (*ports.ResolveResult, error) {
	upToDate, err := s.cache.IsUpToDate(ctx)
	if err != nil || !upToDate {
		s.log.Error().Err(err).Msg("address cache not up to date")
		return nil, apperror.ErrCacheStale()
	}

	obj, err := s.repo.Get(ctx, req.ID)
	if err != nil {
		s.log.Error().Err(err).Str("id", req.ID).Msg("failed to load endpoint")
		return nil, apperror.Internal("Exception occurred when retrieving endpoint from database", err)
	}
	if obj == nil {
		return nil, apperror.ErrNotFound("Unable to retrieve endpoint from database")
	}

	if obj.PRROnly {
		return nil, apperror.ErrPRROnly()
	}

	if !obj.BIP32Enabled && obj.WalletAddress == "" {
		s.log.Warn().Str("id", obj.ID).Msg("bip32 disabled and no static wallet_address")
		return nil, apperror.Validation("Unable to retrieve wallet_address")
	}

	addr := obj.WalletAddress
	if obj.BIP32Enabled {
		addr, err = s.nextAddress(ctx, obj, req.ClientIP)
		if err != nil {
			s.log.Error().Err(err).Str("id", obj.ID).Msg("failed to derive unused bip32 address")
			return nil, apperror.Internal("Unable to retrieve wallet_address", err)
		}
	}

	bip70Arg := strings.ToLower(req.BIP70)
	if bip70Arg == "true" && !obj.BIP70Enabled {
		return nil, apperror.ErrBIP70Disabled()
	}

	wantsBinary := bip70Arg == "true" || strings.Contains(req.Accept, domain.MIMEPaymentRequest)

	if obj.BIP70Enabled && wantsBinary {
		if obj.HasPresigned() {
			pr, err := s.nextPresigned(ctx, obj)
			if err != nil {
				return nil, err
			}
			if pr == nil {
				return nil, apperror.ErrNoPaymentRequests()
			}
			return &ports.ResolveResult{PaymentRequest: pr}, nil
		}
		if obj.PresignedOnly {
			s.log.Warn().Str("id", obj.ID).Msg("presigned payment requests exhausted")
			return nil, apperror.ErrNoPaymentRequests()
		}

		amount, err := resolveAmount(obj, req.Amount)
		if err != nil {
			return nil, err
		}
		pr, err := s.buildPaymentRequest(ctx, obj, addr, amount)
		if err != nil {
			s.log.Error().Err(err).Str("id", obj.ID).Msg("failed to create payment request")
			return nil, apperror.Internal("Unable to create payment request", err)
		}
		return &ports.ResolveResult{PaymentRequest: pr}, nil
	}

	if obj.BIP70Enabled && bip70Arg != "false" {
		if !obj.HasPresigned() && obj.PresignedOnly {
			s.log.Warn().Str("id", obj.ID).Msg("presigned payment requests exhausted")
			return nil, apperror.ErrNoPaymentRequests()
		}
		if obj.HasPresigned() {
			pr, err := s.nextPresigned(ctx, obj)
			if err != nil {
				return nil, err
			}
			if pr == nil {
				return nil, apperror.ErrNoPaymentRequests()
			}
			return &ports.ResolveResult{
				URI: BIP72URI("", 0, fmt.Sprintf("%s/resolve/%s?bip70=true", s.siteBase(), obj.ID)),
			}, nil
		}

		amount, err := resolveAmount(obj, req.Amount)
		if err != nil {
			return nil, err
		}
		r := fmt.Sprintf("%s/resolve/%s?bip70=true&amount=%d", s.siteBase(), obj.ID, amount)
		return &ports.ResolveResult{URI: BIP72URI(addr, amount, r)}, nil
	}

	return &ports.ResolveResult{URI: BIP72URI(addr, 0, "")}, nil
}

// Branches lists the derivation branches used by an endpoint.
func (s *ResolverServiceImpl) Branches(ctx context.Context, id string) ([]uint32, error) {
	branches, err := s.branches.Branches(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if branches == nil {
		branches = []uint32{}
	}
	return branches, nil
}

// nextAddress returns the first address past the branch cursor that the
// address cache has not seen, persisting the issued index before returning.
func (s *ResolverServiceImpl) nextAddress(ctx context.Context, obj *domain.IdObject, clientIP string) (string, error) {
	if obj.MasterPublicKey == "" {
		return "", domain.ErrMissingMasterKey
	}

	var branch uint32
	if s.cfg.IPBranching {
		branch = chain.BranchForIP(clientIP)
	}

	cursor, ok, err := s.branches.GetIndex(ctx, obj.ID, branch)
	if err != nil {
		return "", fmt.Errorf("load branch cursor: %w", err)
	}

	var index int64
	switch {
	case ok:
		index = cursor + 1
	case !s.cfg.IPBranching && obj.LastGeneratedIndex > 0:
		index = obj.LastGeneratedIndex + 1
	}

	for i := 0; i < s.cfg.MaxDerivationAttempts; i++ {
		path := []uint32{uint32(index)}
		if s.cfg.IPBranching {
			path = []uint32{branch, uint32(index)}
		}

		addr, err := chain.DeriveAddress(obj.MasterPublicKey, s.params, path...)
		if err != nil {
			return "", err
		}

		used, err := s.cache.IsAddressUsed(ctx, addr)
		if err != nil {
			return "", fmt.Errorf("address cache lookup: %w", err)
		}
		if used {
			s.log.Debug().Str("id", obj.ID).Uint32("branch", branch).Int64("index", index).Msg("derived address already used")
			if index > obj.LastUsedIndex {
				obj.LastUsedIndex = index
			}
			index++
			continue
		}

		if err := s.branches.SetIndex(ctx, obj.ID, branch, index); err != nil {
			return "", fmt.Errorf("persist branch cursor: %w", err)
		}
		if index > obj.LastGeneratedIndex {
			obj.LastGeneratedIndex = index
		}
		if _, err := s.repo.Save(ctx, obj); err != nil {
			return "", fmt.Errorf("persist endpoint: %w", err)
		}

		s.log.Info().Str("id", obj.ID).Uint32("branch", branch).Int64("index", index).Str("address", addr).Msg("issued bip32 address")
		return addr, nil
	}

	return "", domain.ErrDerivationExhausted
}

// nextPresigned prunes presigned entries whose outputs were already seen on
// chain and returns the first remaining one, or nil when none remain. The
// record is saved only when something was pruned.
func (s *ResolverServiceImpl) nextPresigned(ctx context.Context, obj *domain.IdObject) ([]byte, error) {
	var chosen []byte
	pruned := 0

	for _, entry := range obj.PresignedPaymentRequests {
		raw, used, err := s.presignedUsed(ctx, entry)
		if err != nil {
			return nil, apperror.Internal("Unable to check presigned PaymentRequests", err)
		}
		if used {
			pruned++
			continue
		}
		chosen = raw
		break
	}

	if pruned == 0 {
		return chosen, nil
	}

	obj.PresignedPaymentRequests = append([]string{}, obj.PresignedPaymentRequests[pruned:]...)
	if _, err := s.repo.Save(ctx, obj); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	s.log.Info().Str("id", obj.ID).Int("pruned", pruned).Msg("pruned used presigned payment requests")
	return chosen, nil
}

// presignedUsed decodes one stored entry and reports whether any of its P2PKH
// outputs is in the address cache. Undecodable entries count as used.
func (s *ResolverServiceImpl) presignedUsed(ctx context.Context, entry string) ([]byte, bool, error) {
	raw, err := hex.DecodeString(entry)
	if err != nil {
		s.log.Warn().Err(err).Msg("presigned entry is not hex, pruning")
		return nil, true, nil
	}

	var pr bip70.PaymentRequest
	if err := pr.Unmarshal(raw); err != nil {
		s.log.Warn().Err(err).Msg("presigned entry does not parse, pruning")
		return nil, true, nil
	}
	details, err := pr.Details()
	if err != nil {
		s.log.Warn().Err(err).Msg("presigned entry details do not parse, pruning")
		return nil, true, nil
	}

	for _, addr := range details.PubKeyHashAddresses(s.params) {
		used, err := s.cache.IsAddressUsed(ctx, addr)
		if err != nil {
			return nil, false, err
		}
		if used {
			return raw, true, nil
		}
	}
	return raw, false, nil
}

// buildPaymentRequest signs a single-output request for addr. Without a
// merchant payment_url, Payments come back to this service and the expected
// outputs are recorded under a fresh merchant_data key.
func (s *ResolverServiceImpl) buildPaymentRequest(ctx context.Context, obj *domain.IdObject, addr string, amount int64) ([]byte, error) {
	if obj.X509Cert == "" {
		return nil, domain.ErrMissingCert
	}

	now := s.now()
	expires := now.Add(s.cfg.DefaultExpiration)
	if obj.Expires != nil {
		expires = time.Unix(obj.Expires.Resolve(now), 0)
	}

	paymentURL := obj.PaymentURL
	merchantData := obj.MerchantData
	if paymentURL == "" {
		key := domain.NewHexToken(2)
		meta, err := domain.NewInvoiceMeta(key, expires.Unix(), map[string]int64{addr: amount * domain.SatoshiPerUnit})
		if err != nil {
			return nil, err
		}
		if err := s.invoices.Put(ctx, meta); err != nil {
			return nil, fmt.Errorf("store invoice meta: %w", err)
		}
		paymentURL = fmt.Sprintf("%s/payment/%s", s.siteBase(), obj.ID)
		merchantData = key
	}

	raw, err := bip70.Build(bip70.Request{
		Destination:  addr,
		Amount:       amount,
		Time:         now,
		Expires:      expires,
		Memo:         obj.Memo,
		PaymentURL:   paymentURL,
		MerchantData: []byte(merchantData),
		CertPEM:      obj.X509Cert,
		Signer:       &recordSigner{ctx: ctx, obj: obj, signer: s.signer},
	}, s.params)
	if err != nil {
		return nil, err
	}

	entry := &domain.PaymentRequestLog{
		Address:      addr,
		Signer:       s.signer.PKIType(),
		Amount:       amount,
		Expires:      expires.Unix(),
		Memo:         obj.Memo,
		PaymentURL:   paymentURL,
		MerchantData: merchantData,
		CreatedAt:    now.UTC(),
	}
	if err := s.prLog.LogPaymentRequest(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("id", obj.ID).Msg("payment request log failed")
	}

	return raw, nil
}

func (s *ResolverServiceImpl) siteBase() string {
	return "https://" + strings.TrimSuffix(s.cfg.SiteURL, "/")
}

// recordSigner binds a ports.Signer to one record for bip70.Build.
type recordSigner struct {
	ctx    context.Context
	obj    *domain.IdObject
	signer ports.Signer
}

func (r *recordSigner) PKIType() string { return r.signer.PKIType() }

func (r *recordSigner) Sign(data []byte) ([]byte, error) {
	return r.signer.Sign(r.ctx, r.obj, data)
}

// resolveAmount prefers the static amount, then the query parameter.
func resolveAmount(obj *domain.IdObject, query string) (int64, error) {
	if obj.BIP70StaticAmount != nil {
		if amount := *obj.BIP70StaticAmount; amount >= 0 && amount <= domain.MaxAmount {
			return amount, nil
		}
		return 0, apperror.Validation("Invalid amount")
	}
	if query == "" {
		return 0, nil
	}
	amount, err := strconv.ParseInt(query, 10, 64)
	if err != nil || amount < 0 || amount > domain.MaxAmount {
		return 0, apperror.Validation("Invalid amount")
	}
	return amount, nil
}

// BIP72URI formats a bitcoin: URI. A zero amount is omitted and r is
// query-escaped.
func BIP72URI(addr string, amount int64, r string) string {
	var params []string
	if amount > 0 {
		params = append(params, "amount="+strconv.FormatInt(amount, 10))
	}
	if r != "" {
		params = append(params, "r="+url.QueryEscape(r))
	}

	uri := "bitcoin:" + addr
	if len(params) > 0 {
		uri += "?" + strings.Join(params, "&")
	}
	return uri
}
