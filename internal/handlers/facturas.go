package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/phpdave11/gofpdf"

	"citasalud/internal/models"
)

func (h *Handler) GetFacturas(c *fiber.Ctx) error {
	query := `SELECT f.id, f.folio, u.usuario, f.fecha, f.subtotal, f.iva, f.total
	          FROM facturas f
	          JOIN usuarios u ON f.id_usuario = u.id
	          ORDER BY f.fecha DESC, f.id DESC`

	rows, err := h.DB.Query(context.Background(), query)
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener facturas")
	}
	defer rows.Close()

	facturas := []models.Factura{}
	for rows.Next() {
		var f models.Factura
		if err := rows.Scan(&f.ID, &f.Folio, &f.Usuario, &f.Fecha, &f.Subtotal, &f.IVA, &f.Total); err != nil {
			return h.errorInterno(c, err, "Error al procesar los datos")
		}
		facturas = append(facturas, f)
	}

	return c.JSON(facturas)
}

// detalleFactura lee el encabezado con los totales tal como se guardaron
// al facturar; la factura es inmutable y no se recalcula con el IVA vigente.
func (h *Handler) detalleFactura(ctx context.Context, id string) (*models.FacturaDetalle, error) {
	var d models.FacturaDetalle
	err := h.DB.QueryRow(ctx,
		`SELECT f.id, f.folio, u.nombres || ' ' || u.apellidos, f.fecha, f.subtotal, f.iva, f.total
		 FROM facturas f
		 JOIN usuarios u ON f.id_usuario = u.id
		 WHERE f.id=$1`, id).Scan(
		&d.ID, &d.Folio, &d.Cliente, &d.Fecha, &d.Subtotal, &d.IVA, &d.Total)
	if err != nil {
		return nil, err
	}

	rows, err := h.DB.Query(ctx,
		`SELECT p.nombre, ci.fecha, hr.hora, ci.precio
		 FROM factura_citas fc
		 JOIN citas ci ON fc.id_cita = ci.id
		 JOIN patologias p ON ci.id_patologia = p.id
		 JOIN horarios hr ON ci.id_horario = hr.id
		 WHERE fc.id_factura=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l models.FacturaLinea
		if err := rows.Scan(&l.Patologia, &l.Fecha, &l.Hora, &l.Precio); err != nil {
			return nil, err
		}
		d.Lineas = append(d.Lineas, l)
	}

	return &d, rows.Err()
}

func (h *Handler) GetFactura(c *fiber.Ctx) error {
	detalle, err := h.detalleFactura(context.Background(), c.Params("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Factura no encontrada"})
	}
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener la factura")
	}

	return c.JSON(detalle)
}

func (h *Handler) GetFacturaPDF(c *fiber.Ctx) error {
	detalle, err := h.detalleFactura(context.Background(), c.Params("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Factura no encontrada"})
	}
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener la factura")
	}

	pdfBytes, err := RenderFacturaPDF(detalle)
	if err != nil {
		return h.errorInterno(c, err, "Error al generar el PDF")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// RenderFacturaPDF arma el PDF A4 de una factura.
func RenderFacturaPDF(d *models.FacturaDetalle) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Factura de citas médicas")

	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Folio: %s", d.Folio))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Cliente: %s", d.Cliente))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Fecha: %s", d.Fecha))

	pdf.Ln(12)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(70, 8, "Patología")
	pdf.Cell(40, 8, "Fecha")
	pdf.Cell(30, 8, "Hora")
	pdf.Cell(30, 8, "Precio")
	pdf.SetFont("Arial", "", 12)
	for _, l := range d.Lineas {
		pdf.Ln(8)
		pdf.Cell(70, 8, l.Patologia)
		pdf.Cell(40, 8, l.Fecha)
		pdf.Cell(30, 8, l.Hora)
		pdf.Cell(30, 8, fmt.Sprintf("%.2f", l.Precio))
	}

	pdf.Ln(12)
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: %.2f", d.Subtotal))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("IVA: %.2f", d.IVA))
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", d.Total))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
