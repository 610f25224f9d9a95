package kucoin

type KuCoin struct {
	Rest
	Ws
}

func New(option Options) *KuCoin {
	instance := &KuCoin{}
	instance.Rest.Init(option)
	instance.Ws.Init(option)

	if len(option.Markets) == 0 {
		instance.Ws.Option.Markets, _ = instance.FetchMarkets()
	}

	return instance
}

var _ IExchange = (*KuCoin)(nil)
