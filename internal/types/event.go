package types

// CustodyEventType is the kind of signal sent to the custody collaborator.
type CustodyEventType string

func (e CustodyEventType) String() string {
	return string(e)
}

const (
	EventAssetReceived  CustodyEventType = "ASSET_RECEIVED"
	EventReleaseAsset   CustodyEventType = "RELEASE_ASSET"
	EventRewardWithdraw CustodyEventType = "REWARD_WITHDRAW"
)
