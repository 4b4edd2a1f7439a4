// Package payment implements the checkout payment methods as a closed set
// of variants. Each method carries its own validated field struct; outcomes
// are synthetic (no real gateway behind them).
package payment

import (
	"regexp"
	"strings"

	"artisan-marketplace/pkg/utils"
)

// Method identifies a supported payment method.
type Method string

const (
	MethodCardCredit Method = "tarjeta_credito"
	MethodCardDebit  Method = "tarjeta_debito"
	MethodWallet     Method = "yappy"
	MethodTransfer   Method = "transferencia"
)

// Result is the outcome of processing a payment.
type Result struct {
	Exitoso              bool   `json:"exitoso"`
	Mensaje              string `json:"mensaje"`
	TransaccionID        string `json:"transaccion_id,omitempty"`
	RequiereConfirmacion bool   `json:"requiere_confirmacion,omitempty"`
}

// Fields holds the raw method-specific values submitted at checkout
// (the datos_pago object).
type Fields map[string]string

// ResolveMethod maps the submitted method key onto a variant. Unrecognized
// keys resolve to the card method; callers treat that as a default, not an
// error.
func ResolveMethod(key string) Method {
	switch Method(key) {
	case MethodCardCredit, MethodCardDebit, MethodWallet, MethodTransfer:
		return Method(key)
	default:
		return MethodCardCredit
	}
}

// DisplayName returns the user-facing name of the method.
func (m Method) DisplayName() string {
	switch m {
	case MethodWallet:
		return "Yappy"
	case MethodTransfer:
		return "Transferencia Bancaria"
	default:
		return "Tarjeta de Crédito/Débito"
	}
}

// Process validates the method's fields and produces a synthetic outcome.
func Process(method Method, amount float64, fields Fields) Result {
	switch method {
	case MethodWallet:
		return walletDetailsFrom(fields).process(amount)
	case MethodTransfer:
		return transferDetailsFrom(fields).process(amount)
	default:
		return cardDetailsFrom(fields).process(amount)
	}
}

// ==================== CARD ====================

type CardDetails struct {
	Number string `validate:"required,min=13"`
	Expiry string `validate:"required"`
	CVV    string `validate:"required,min=3"`
	Holder string `validate:"required"`
}

func cardDetailsFrom(fields Fields) CardDetails {
	return CardDetails{
		Number: fields["numero_tarjeta"],
		Expiry: fields["fecha_expiracion"],
		CVV:    fields["cvv"],
		Holder: fields["nombre_titular"],
	}
}

func (d CardDetails) valid() bool {
	return len(utils.ValidateStruct(d)) == 0
}

func (d CardDetails) process(amount float64) Result {
	if !d.valid() {
		return Result{Exitoso: false, Mensaje: "Datos de tarjeta inválidos"}
	}

	// Synthetic bank rejection: last four digits 0000.
	if strings.HasSuffix(d.Number, "0000") {
		return Result{Exitoso: false, Mensaje: "Tarjeta rechazada por el banco"}
	}

	return Result{
		Exitoso:       true,
		Mensaje:       "Pago procesado exitosamente",
		TransaccionID: utils.GenerateTransactionID("CARD"),
	}
}

// ==================== WALLET (Yappy) ====================

// walletPhonePattern matches local mobile numbers, e.g. 6123-4567.
var walletPhonePattern = regexp.MustCompile(`^[6-9]\d{3}-\d{4}$`)

type WalletDetails struct {
	Phone string
}

func walletDetailsFrom(fields Fields) WalletDetails {
	return WalletDetails{Phone: fields["telefono"]}
}

func (d WalletDetails) valid() bool {
	return walletPhonePattern.MatchString(d.Phone)
}

func (d WalletDetails) process(amount float64) Result {
	if !d.valid() {
		return Result{Exitoso: false, Mensaje: "Número de teléfono inválido para Yappy"}
	}

	// Synthetic rejection: phone ending in 0000.
	if strings.HasSuffix(d.Phone, "0000") {
		return Result{Exitoso: false, Mensaje: "Pago rechazado por Yappy"}
	}

	return Result{
		Exitoso:       true,
		Mensaje:       "Pago procesado exitosamente con Yappy",
		TransaccionID: utils.GenerateTransactionID("YAPPY"),
	}
}

// ==================== BANK TRANSFER ====================

type TransferDetails struct {
	Bank    string `validate:"required"`
	Account string `validate:"required"`
	Holder  string `validate:"required"`
}

func transferDetailsFrom(fields Fields) TransferDetails {
	return TransferDetails{
		Bank:    fields["banco"],
		Account: fields["numero_cuenta"],
		Holder:  fields["nombre_titular"],
	}
}

func (d TransferDetails) valid() bool {
	return len(utils.ValidateStruct(d)) == 0
}

// Transfers always register; confirmation happens out of band.
func (d TransferDetails) process(amount float64) Result {
	if !d.valid() {
		return Result{Exitoso: false, Mensaje: "Datos de transferencia inválidos"}
	}

	return Result{
		Exitoso:              true,
		Mensaje:              "Transferencia registrada. Pendiente de confirmación bancaria.",
		TransaccionID:        utils.GenerateTransactionID("TRANSFER"),
		RequiereConfirmacion: true,
	}
}
