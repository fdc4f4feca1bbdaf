package worker

import (
	"context"
	"fmt"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/infra"
	"github.com/JhoonerO/TuckFlow/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboWorker renders the PDF receipt of a committed sale and optionally
// mails it. Everything here is best-effort: the sale is already committed,
// so failures are logged and the job dropped — never propagated back.
type ReciboWorker struct {
	ventaRepo      repository.VentaRepository
	perfilRepo     repository.PerfilRepository
	mailer         *infra.Mailer
	mailerCB       *infra.CircuitBreaker
	storagePath    string
	negocioDefault string
}

func NewReciboWorker(
	ventaRepo repository.VentaRepository,
	perfilRepo repository.PerfilRepository,
	mailer *infra.Mailer,
	mailerCB *infra.CircuitBreaker,
	storagePath, negocioDefault string,
) *ReciboWorker {
	return &ReciboWorker{
		ventaRepo:      ventaRepo,
		perfilRepo:     perfilRepo,
		mailer:         mailer,
		mailerCB:       mailerCB,
		storagePath:    storagePath,
		negocioDefault: negocioDefault,
	}
}

func (w *ReciboWorker) Handle(ctx context.Context, payload ReciboPayload) {
	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("recibo job with invalid venta_id")
		return
	}
	usuarioID, err := uuid.Parse(payload.UsuarioID)
	if err != nil {
		log.Error().Str("usuario_id", payload.UsuarioID).Msg("recibo job with invalid usuario_id")
		return
	}

	recibo, err := w.buildRecibo(ctx, usuarioID, ventaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Err(err).Msg("could not rebuild recibo for rendering")
		return
	}

	pdfPath, err := infra.GenerateReciboPDF(recibo, w.storagePath)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Err(err).Msg("recibo PDF generation failed")
		return
	}
	log.Info().Str("venta_id", payload.VentaID).Str("pdf", pdfPath).Msg("recibo PDF generated")

	if payload.ClienteEmail == "" || w.mailer == nil {
		return
	}

	subject := fmt.Sprintf("Recibo de compra #%s — %s", recibo.NumeroVenta, recibo.NombreNegocio)
	body := fmt.Sprintf("Adjuntamos el recibo de su compra del %s. ¡Gracias!", recibo.Fecha)
	sendErr := w.mailerCB.Execute(func() error {
		return w.mailer.SendRecibo(payload.ClienteEmail, subject, body, pdfPath)
	})
	if sendErr != nil {
		log.Error().
			Str("venta_id", payload.VentaID).
			Str("cb_state", w.mailerCB.State().String()).
			Err(sendErr).
			Msg("recibo e-mail delivery failed")
		return
	}
	log.Info().Str("venta_id", payload.VentaID).Msg("recibo e-mailed")
}

func (w *ReciboWorker) buildRecibo(ctx context.Context, usuarioID, ventaID uuid.UUID) (*dto.Recibo, error) {
	v, err := w.ventaRepo.FindByID(ctx, usuarioID, ventaID)
	if err != nil {
		return nil, err
	}

	negocio := w.negocioDefault
	if perfil, err := w.perfilRepo.FindByUsuarioID(ctx, usuarioID); err == nil && perfil.NombreNegocio != "" {
		negocio = perfil.NombreNegocio
	}

	recibo := &dto.Recibo{
		VentaID:       v.ID.String(),
		NumeroVenta:   v.NumeroVenta(),
		Fecha:         v.CreatedAt.Format("02/01/2006 15:04"),
		NombreNegocio: negocio,
		Subtotal:      v.Subtotal,
		Descuento:     v.Descuento,
		Total:         v.Total,
	}
	for _, item := range v.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		recibo.Items = append(recibo.Items, dto.ReciboItem{
			Nombre:         nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	return recibo, nil
}
