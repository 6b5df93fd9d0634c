package shopifyevents

const (
	TopicName                 = "shopifyauth"
	installationStartedName   = TopicName + ".installation.started"
	installationCompletedName = TopicName + ".installation.completed"
	installationFailedName    = TopicName + ".installation.failed"
)

type InstallationStarted struct {
	Shop string
}

func (e InstallationStarted) GetEventTypeName() string {
	return installationStartedName
}

func (e InstallationStarted) GetAggregateName() string {
	return e.Shop
}

type InstallationCompleted struct {
	Shop  string
	Scope string
}

func (e InstallationCompleted) GetEventTypeName() string {
	return installationCompletedName
}

func (e InstallationCompleted) GetAggregateName() string {
	return e.Shop
}

type InstallationFailed struct {
	Shop   string
	Kind   string
	Reason string
}

func (e InstallationFailed) GetEventTypeName() string {
	return installationFailedName
}

func (e InstallationFailed) GetAggregateName() string {
	return e.Shop
}
