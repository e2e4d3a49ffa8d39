package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
)

var landing = dto.LandingDTO{
	Title:    "Fedrita, tu asistente inteligente para salones",
	Subtitle: "Atiende WhatsApp, agenda turnos y gestiona tu equipo sin esfuerzo. La IA que revoluciona la gestión de salones de belleza.",
	Features: []dto.LandingItem{
		{Title: "Atención WhatsApp 24/7", Description: "Responde automáticamente a tus clientes las 24 horas, agenda citas y resuelve consultas básicas."},
		{Title: "Agenda Inteligente", Description: "Gestiona turnos, evita solapamientos y optimiza los horarios de tu equipo automáticamente."},
		{Title: "IA Conversacional", Description: "Comprende el lenguaje natural de tus clientes y ofrece respuestas personalizadas."},
		{Title: "Gestión de Equipo", Description: "Administra horarios, servicios y disponibilidad de cada profesional de tu salón."},
		{Title: "Reportes y Analytics", Description: "Obtén insights valiosos sobre tu negocio con reportes detallados y métricas clave."},
		{Title: "Seguridad Total", Description: "Protección de datos de clientes con encriptación y cumplimiento de normativas."},
	},
	Benefits: []dto.LandingItem{
		{Title: "Aumenta tus ventas hasta 40%", Description: "Nunca pierdas una cita. Fedrita convierte consultas en reservas automáticamente."},
		{Title: "Ahorra 15 horas semanales", Description: "Automatiza tareas repetitivas y enfócate en lo que realmente importa: tus clientes."},
		{Title: "Clientes más satisfechos", Description: "Respuesta inmediata 24/7 mejora la experiencia y fidelización de clientes."},
		{Title: "Reduce costos operativos", Description: "Menos personal administrativo necesario, más eficiencia en la gestión."},
	},
	HowItWorks: []dto.LandingItem{
		{Title: "1. Regístrate gratis", Description: "Crea tu cuenta en menos de 2 minutos y configura los datos básicos de tu salón."},
		{Title: "2. Configura tu asistente", Description: "Personaliza Fedrita con tus servicios, horarios y equipo de trabajo."},
		{Title: "3. ¡Listo para funcionar!", Description: "Conecta tu WhatsApp y deja que Fedrita gestione automáticamente tus reservas."},
	},
	Testimonials: []dto.Testimonial{
		{Name: "María González", Role: "Salón Elegance", Rating: 5, Content: "Fedrita revolucionó mi salón. Ahora mis clientes pueden agendar citas a cualquier hora y nunca perdemos una reserva. ¡Increíble!"},
		{Name: "Carlos Mendoza", Role: "Beauty Studio CM", Rating: 5, Content: "La automatización de WhatsApp es fantástica. Mis clientes están más satisfechos y yo tengo más tiempo para enfocarme en mi trabajo."},
		{Name: "Ana Rodríguez", Role: "Spa & Beauty", Rating: 5, Content: "Desde que uso Fedrita, mis ventas aumentaron 35%. La IA entiende perfectamente a mis clientes y agenda todo automáticamente."},
	},
	CTA: dto.LandingItem{
		Title:       "¿Listo para transformar tu salón con IA?",
		Description: "Comienza gratis hoy y descubre cómo Fedrita puede revolucionar la gestión de tu negocio en menos de 5 minutos.",
	},
}

// Landing godoc
// @Summary      Página pública
// @Tags         public
// @Produce      json
// @Success      200  {object}  dto.LandingDTO
// @Router       / [get]
func Landing(c *fiber.Ctx) error {
	return c.JSON(landing)
}
