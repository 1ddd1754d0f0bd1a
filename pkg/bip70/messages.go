// Package bip70 encodes and decodes the BIP70 payment protocol messages.
package bip70

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Defaults applied to absent optional fields.
const (
	DefaultNetwork = "main"
	DefaultVersion = 1
	PKITypeNone    = "none"

	PKITypeX509SHA256 = "x509+sha256"
)

var (
	errWireType = errors.New("bip70: unexpected wire type")
	errMissing  = errors.New("bip70: missing required field")
)

// Output is a single amount/script pair.
type Output struct {
	Amount uint64
	Script []byte
}

// PaymentDetails is the payload a PaymentRequest carries.
type PaymentDetails struct {
	Network      string
	Outputs      []Output
	Time         uint64
	Expires      uint64
	Memo         string
	PaymentURL   string
	MerchantData []byte
}

// PaymentRequest wraps serialized PaymentDetails with optional PKI data.
type PaymentRequest struct {
	PaymentDetailsVersion    uint32
	PKIType                  string
	PKIData                  []byte
	SerializedPaymentDetails []byte
	Signature                []byte
}

// X509Certificates is the DER chain carried in pki_data, leaf first.
type X509Certificates struct {
	Certificates [][]byte
}

// Payment is sent by the customer to payment_url.
type Payment struct {
	MerchantData []byte
	Transactions [][]byte
	RefundTo     []Output
	Memo         string
}

// PaymentACK acknowledges a Payment.
type PaymentACK struct {
	Payment Payment
	Memo    string
}

// Marshal encodes the output.
func (o *Output) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, o.Amount)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, o.Script)
	return b
}

// Unmarshal decodes an output. script is required.
func (o *Output) Unmarshal(b []byte) error {
	*o = Output{}
	var hasScript bool
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(typ, b)
			o.Amount = v
			return n, err
		case 2:
			v, n, err := consumeBytes(typ, b)
			o.Script = v
			hasScript = true
			return n, err
		}
		return skip, nil
	})
	if err != nil {
		return err
	}
	if !hasScript {
		return fmt.Errorf("%w: output.script", errMissing)
	}
	return nil
}

// Marshal encodes the details. network is omitted when it is the default.
func (d *PaymentDetails) Marshal() []byte {
	var b []byte
	if d.Network != "" && d.Network != DefaultNetwork {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, d.Network)
	}
	for i := range d.Outputs {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, d.Outputs[i].Marshal())
	}
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, d.Time)
	if d.Expires != 0 {
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, d.Expires)
	}
	b = protowire.AppendTag(b, 5, protowire.BytesType)
	b = protowire.AppendString(b, d.Memo)
	b = protowire.AppendTag(b, 6, protowire.BytesType)
	b = protowire.AppendString(b, d.PaymentURL)
	b = protowire.AppendTag(b, 7, protowire.BytesType)
	b = protowire.AppendBytes(b, d.MerchantData)
	return b
}

// Unmarshal decodes details. time is required.
func (d *PaymentDetails) Unmarshal(b []byte) error {
	*d = PaymentDetails{Network: DefaultNetwork}
	var hasTime bool
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(typ, b)
			d.Network = string(v)
			return n, err
		case 2:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return n, err
			}
			var o Output
			if err := o.Unmarshal(v); err != nil {
				return n, err
			}
			d.Outputs = append(d.Outputs, o)
			return n, nil
		case 3:
			v, n, err := consumeVarint(typ, b)
			d.Time = v
			hasTime = true
			return n, err
		case 4:
			v, n, err := consumeVarint(typ, b)
			d.Expires = v
			return n, err
		case 5:
			v, n, err := consumeBytes(typ, b)
			d.Memo = string(v)
			return n, err
		case 6:
			v, n, err := consumeBytes(typ, b)
			d.PaymentURL = string(v)
			return n, err
		case 7:
			v, n, err := consumeBytes(typ, b)
			d.MerchantData = v
			return n, err
		}
		return skip, nil
	})
	if err != nil {
		return err
	}
	if !hasTime {
		return fmt.Errorf("%w: payment_details.time", errMissing)
	}
	return nil
}

// Marshal encodes the request. A non-nil empty Signature is emitted so the
// signing input carries an empty signature field.
func (r *PaymentRequest) Marshal() []byte {
	var b []byte
	version := r.PaymentDetailsVersion
	if version == 0 {
		version = DefaultVersion
	}
	pkiType := r.PKIType
	if pkiType == "" {
		pkiType = PKITypeNone
	}
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(version))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, pkiType)
	if len(r.PKIData) > 0 {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, r.PKIData)
	}
	b = protowire.AppendTag(b, 4, protowire.BytesType)
	b = protowire.AppendBytes(b, r.SerializedPaymentDetails)
	if r.Signature != nil {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, r.Signature)
	}
	return b
}

// Unmarshal decodes a request. serialized_payment_details is required.
func (r *PaymentRequest) Unmarshal(b []byte) error {
	*r = PaymentRequest{PaymentDetailsVersion: DefaultVersion, PKIType: PKITypeNone}
	var hasDetails bool
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(typ, b)
			r.PaymentDetailsVersion = uint32(v)
			return n, err
		case 2:
			v, n, err := consumeBytes(typ, b)
			r.PKIType = string(v)
			return n, err
		case 3:
			v, n, err := consumeBytes(typ, b)
			r.PKIData = v
			return n, err
		case 4:
			v, n, err := consumeBytes(typ, b)
			r.SerializedPaymentDetails = v
			hasDetails = true
			return n, err
		case 5:
			v, n, err := consumeBytes(typ, b)
			r.Signature = v
			return n, err
		}
		return skip, nil
	})
	if err != nil {
		return err
	}
	if !hasDetails {
		return fmt.Errorf("%w: serialized_payment_details", errMissing)
	}
	return nil
}

// Details decodes the embedded PaymentDetails.
func (r *PaymentRequest) Details() (*PaymentDetails, error) {
	d := &PaymentDetails{}
	if err := d.Unmarshal(r.SerializedPaymentDetails); err != nil {
		return nil, err
	}
	return d, nil
}

// Marshal encodes the certificate chain.
func (c *X509Certificates) Marshal() []byte {
	var b []byte
	for _, cert := range c.Certificates {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, cert)
	}
	return b
}

// Unmarshal decodes a certificate chain.
func (c *X509Certificates) Unmarshal(b []byte) error {
	*c = X509Certificates{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return skip, nil
		}
		v, n, err := consumeBytes(typ, b)
		c.Certificates = append(c.Certificates, v)
		return n, err
	})
}

// Marshal encodes the payment.
func (p *Payment) Marshal() []byte {
	var b []byte
	if p.MerchantData != nil {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, p.MerchantData)
	}
	for _, tx := range p.Transactions {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, tx)
	}
	for i := range p.RefundTo {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, p.RefundTo[i].Marshal())
	}
	if p.Memo != "" {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendString(b, p.Memo)
	}
	return b
}

// Unmarshal decodes a payment.
func (p *Payment) Unmarshal(b []byte) error {
	*p = Payment{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(typ, b)
			p.MerchantData = v
			return n, err
		case 2:
			v, n, err := consumeBytes(typ, b)
			p.Transactions = append(p.Transactions, v)
			return n, err
		case 3:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return n, err
			}
			var o Output
			if err := o.Unmarshal(v); err != nil {
				return n, err
			}
			p.RefundTo = append(p.RefundTo, o)
			return n, nil
		case 4:
			v, n, err := consumeBytes(typ, b)
			p.Memo = string(v)
			return n, err
		}
		return skip, nil
	})
}

// Marshal encodes the ack.
func (a *PaymentACK) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, a.Payment.Marshal())
	if a.Memo != "" {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, a.Memo)
	}
	return b
}

// Unmarshal decodes an ack. payment is required.
func (a *PaymentACK) Unmarshal(b []byte) error {
	*a = PaymentACK{}
	var hasPayment bool
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return n, err
			}
			hasPayment = true
			return n, a.Payment.Unmarshal(v)
		case 2:
			v, n, err := consumeBytes(typ, b)
			a.Memo = string(v)
			return n, err
		}
		return skip, nil
	})
	if err != nil {
		return err
	}
	if !hasPayment {
		return fmt.Errorf("%w: payment_ack.payment", errMissing)
	}
	return nil
}

// skip tells walk to step over a field it does not handle.
const skip = -1

// walk iterates the fields of a message. fn returns the number of value
// bytes consumed, or skip.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m == skip {
			m = protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return protowire.ParseError(m)
			}
		}
		b = b[m:]
	}
	return nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, errWireType
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, errWireType
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return append([]byte{}, v...), n, nil
}
