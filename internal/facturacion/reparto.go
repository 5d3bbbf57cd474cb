package facturacion

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ToleranciaCentavos es el margen aceptado al comparar importes.
var ToleranciaCentavos = decimal.New(1, -2)

// RepartirSubtotal divide el subtotal en n precios de dos decimales que
// suman exactamente el subtotal; el residuo del redondeo cae en el último.
func RepartirSubtotal(subtotal float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, errors.New("el carrito está vacío")
	}

	total := decimal.NewFromFloat(subtotal)
	cuota := total.Div(decimal.NewFromInt(int64(n))).Round(2)

	precios := make([]float64, n)
	acumulado := decimal.Zero
	for i := 0; i < n-1; i++ {
		precios[i], _ = cuota.Float64()
		acumulado = acumulado.Add(cuota)
	}
	precios[n-1], _ = total.Sub(acumulado).Float64()

	return precios, nil
}

// TotalesConsistentes verifica que subtotal + iva = total dentro de la tolerancia.
func TotalesConsistentes(subtotal, iva, total float64) bool {
	diferencia := decimal.NewFromFloat(subtotal).
		Add(decimal.NewFromFloat(iva)).
		Sub(decimal.NewFromFloat(total)).
		Abs()
	return diferencia.Cmp(ToleranciaCentavos) <= 0
}
