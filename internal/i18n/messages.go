package i18n

// Message keys. The English text is the key.
const (
	MsgDefaultTitle    = "E-Mail"
	MsgNoSubject       = "(no subject)"
	MsgNoSessionData   = "No email data found. Please try again."
	MsgLoadFailed      = "Failed to load the email data: %s"
	MsgUploadSuccess   = "The email was sent to Paperless-ngx successfully!"
	MsgUploadFailed    = "Upload failed: %s"
	MsgUnknownError    = "Unknown error"
	MsgUploading       = "Uploading..."
	MsgSubmit          = "Upload"
	MsgCancel          = "Cancel"
	MsgFrom            = "From"
	MsgTo              = "To"
	MsgSubject         = "Subject"
	MsgDate            = "Date"
	MsgTitle           = "Title"
	MsgCorrespondent   = "Correspondent"
	MsgDocumentType    = "Document type"
	MsgTags            = "Tags"
	MsgTagPlaceholder  = "Type to search tags"
	MsgAttachments     = "Attachments"
	MsgNoAttachments   = "No attachments"
	MsgSelectedCount   = "%d of %d selected"
	MsgAddDefaultTag   = "Add tag %q"
	MsgNone            = "None"
	MsgLoading         = "Loading..."
	MsgTaskQueued      = "Task %s queued"
	MsgDialogTitle     = "Upload to Paperless-ngx"
	MsgEmail           = "Email"
	MsgErrorTitle      = "Error"
	MsgSuccessTitle    = "Done"
	MsgDiscardTitle    = "Cancel upload"
	MsgDiscardBody     = "Discard the selected tags and changes?"
	MsgConfirmHint     = "y: yes | n: no"
	MsgCloseHint       = "Press any key to close."
	MsgName            = "Name"
	MsgSize            = "Size"
	MsgType            = "Type"
	MsgHintNext        = "next"
	MsgHintToggle      = "toggle"
	MsgHintAll         = "all"
	MsgHintNone        = "none"
	MsgHintUpload      = "upload"
	MsgHintCancel      = "cancel"
	MsgHintAdd         = "add"
	MsgHintChoose      = "choose"
	MsgHintPick        = "pick"
	MsgHintRemove      = "remove"
	MsgHintChange      = "change"
	MsgTaskStatus      = "Task %s: %s"
	MsgTaskDocument    = "Document %s"
	MsgTaskIDs         = "Tasks"
	MsgLoginSaved      = "Saved credentials for %s"
	MsgLoginConnecting = "Checking connection to %s"
)

type entry struct {
	key string
	de  string
}

var german = []entry{
	{MsgDefaultTitle, "E-Mail"},
	{MsgNoSubject, "(Kein Betreff)"},
	{MsgNoSessionData, "Keine E-Mail-Daten gefunden. Bitte versuchen Sie es erneut."},
	{MsgLoadFailed, "Fehler beim Laden der E-Mail-Daten: %s"},
	{MsgUploadSuccess, "E-Mail wurde erfolgreich an Paperless-ngx gesendet!"},
	{MsgUploadFailed, "Fehler beim Hochladen: %s"},
	{MsgUnknownError, "Unbekannter Fehler"},
	{MsgUploading, "Wird hochgeladen..."},
	{MsgSubmit, "Hochladen"},
	{MsgCancel, "Abbrechen"},
	{MsgFrom, "Von"},
	{MsgTo, "An"},
	{MsgSubject, "Betreff"},
	{MsgDate, "Datum"},
	{MsgTitle, "Titel"},
	{MsgCorrespondent, "Korrespondent"},
	{MsgDocumentType, "Dokumenttyp"},
	{MsgTags, "Tags"},
	{MsgTagPlaceholder, "Tippen, um Tags zu suchen"},
	{MsgAttachments, "Anhänge"},
	{MsgNoAttachments, "Keine Anhänge"},
	{MsgSelectedCount, "%d von %d ausgewählt"},
	{MsgAddDefaultTag, "Tag %q hinzufügen"},
	{MsgNone, "Keine"},
	{MsgLoading, "Wird geladen..."},
	{MsgTaskQueued, "Aufgabe %s eingereiht"},
	{MsgDialogTitle, "An Paperless-ngx senden"},
	{MsgEmail, "E-Mail"},
	{MsgErrorTitle, "Fehler"},
	{MsgSuccessTitle, "Erledigt"},
	{MsgDiscardTitle, "Hochladen abbrechen"},
	{MsgDiscardBody, "Ausgewählte Tags und Änderungen verwerfen?"},
	{MsgConfirmHint, "y: ja | n: nein"},
	{MsgCloseHint, "Beliebige Taste zum Schließen."},
	{MsgName, "Name"},
	{MsgSize, "Größe"},
	{MsgType, "Typ"},
	{MsgHintNext, "weiter"},
	{MsgHintToggle, "umschalten"},
	{MsgHintAll, "alle"},
	{MsgHintNone, "keine"},
	{MsgHintUpload, "hochladen"},
	{MsgHintCancel, "abbrechen"},
	{MsgHintAdd, "hinzufügen"},
	{MsgHintChoose, "wählen"},
	{MsgHintPick, "übernehmen"},
	{MsgHintRemove, "entfernen"},
	{MsgHintChange, "ändern"},
	{MsgTaskStatus, "Aufgabe %s: %s"},
	{MsgTaskDocument, "Dokument %s"},
	{MsgTaskIDs, "Aufgaben"},
	{MsgLoginSaved, "Zugangsdaten für %s gespeichert"},
	{MsgLoginConnecting, "Verbindung zu %s wird geprüft"},
}
