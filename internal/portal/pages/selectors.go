package pages

// CSS Selectors for the Paynova Web Portal
const (
	// Login page
	SelectorToggleTraditionalLogin = ".toggle-login"
	SelectorUsernameInput          = `input[type="text"][placeholder="Usuario"]`
	SelectorPasswordInput          = `input[type="password"][placeholder="Contraseña"]`
	SelectorLoginButton            = `button[type="submit"]`

	// Post-login validation
	SelectorSidebar  = ".my-sidebar"
	SelectorNavbar   = ".navbar"
	SelectorUserInfo = ".user-info"

	// Register and edit forms
	SelectorMemoSelect   = "select#memo"
	SelectorAmountInput  = `input[type="number"][placeholder="0.00"]`
	SelectorDNIInput     = `input[placeholder="Ingrese DNI o RUC"]`
	SelectorPolicyInput  = `input[placeholder*="póliza"]`
	SelectorSuccessAlert = ".alert.alert-success"
	SelectorModal        = ".p-dialog"
	SelectorModalMessage = ".p-dialog-content"

	// Inbox and detail view
	SelectorInboxTable = "table.solicitudes-table, table"
	SelectorInboxRow   = "table tbody tr"
	SelectorTraceState = ".timeline-item.active .estado, .paso-actual"

	// Reportería filters
	SelectorReportCorrelativeFilter = `input[placeholder*="Buscar por correlativo"]`
	SelectorReportIncidentFilter    = `input[placeholder*="Buscar por incidente"]`

	// Regexes used with page.ElementR for text-matched elements
	TextMenuPayRequests = "Solicitud de Pagos"
	TextSendMemo        = "^ENVIAR$"
	TextSendRequest     = "^ENVIAR$"
	TextSaveSelected    = "Guardar Seleccionado"
	TextUnderstood      = "Entendido|Aceptar|OK"
	TextApprove         = "APROBAR"
	TextReject          = "RECHAZAR"
	TextObserve         = "OBSERVAR"
	TextConfirm         = "CONFIRMAR|Confirmar"
	TextBackToInbox     = "VOLVER A BANDEJA"
	TextEditRequest     = "EDITAR SOLICITUD"
	TextUpdate          = "^ACTUALIZAR$"
	TextDetailTitle     = "Detalle de Solicitud"
	TextEditFormTitle   = "Editar Solicitud de Pago"
	TextReportTitle     = "REPORTE DE DATOS PAYNOVA"
	TextConsult         = "CONSULTAR"

	// Navigation links
	SelectorInboxLink    = `a[href="/solicitudes-pago"]`
	SelectorRegisterLink = `a[href="/solicitudes-pago/registrar"]`
	SelectorHistoryLink  = `a[href="/solicitudes-pago/historico"]`
	SelectorReportLink   = `a[href="/solicitudes-pago/reporte"]`
)
