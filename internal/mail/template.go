package mail

import (
	"html/template"
)

type reminderData struct {
	FirstName string
	LastName  string
	Belt      string
	JoinDate  string
	Period    string
}

var reminderTemplate = template.Must(template.New("reminder").Parse(reminderHTML))

const reminderHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: #1e3a8a; color: white; padding: 20px; text-align: center;">
    <h1 style="margin: 0; font-size: 24px;">Dojo Lanza Mexicana</h1>
    <p style="margin: 10px 0 0 0;">Sistema de Gestión de Cuotas</p>
  </div>

  <div style="padding: 30px; background: #f9fafb;">
    <h2 style="color: #1f2937;">Hola {{.FirstName}},</h2>

    <p style="color: #4b5563; line-height: 1.6;">
      Te escribimos para recordarte que tu cuota mensual correspondiente al
      período <strong>{{.Period}}</strong> aún está pendiente de pago.
    </p>

    <div style="background: #fef3c7; border-left: 4px solid #f59e0b; padding: 15px; margin: 20px 0;">
      <p style="margin: 0; color: #92400e;"><strong>Pago pendiente:</strong> {{.Period}}</p>
    </div>

    <div style="background: white; border: 1px solid #e5e7eb; border-radius: 8px; padding: 20px; margin: 20px 0;">
      <h3 style="color: #1f2937; margin-top: 0;">Información de tu membresía:</h3>
      <ul style="color: #4b5563; line-height: 1.6;">
        <li><strong>Nombre:</strong> {{.FirstName}} {{.LastName}}</li>
        <li><strong>Cinturón:</strong> {{.Belt}}</li>
        <li><strong>Fecha de ingreso:</strong> {{.JoinDate}}</li>
      </ul>
    </div>

    <p style="color: #4b5563; line-height: 1.6;">
      Si ya realizaste el pago, por favor ignora este mensaje.
    </p>
  </div>

  <div style="background: #374151; color: #9ca3af; padding: 20px; text-align: center; font-size: 12px;">
    <p style="margin: 0;">Dojo Lanza Mexicana - Sistema de Gestión de Cuotas</p>
    <p style="margin: 5px 0 0 0;">Este es un mensaje automático, por favor no responder a este correo.</p>
  </div>
</div>`
