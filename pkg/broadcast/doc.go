// Package broadcast implements an in-memory, typed, one-to-many message fan-out.
//
// It is the transport behind store snapshot feeds (pkg/store) and the toast
// and loading notification channel (svc/notify). Publishing never blocks: every
// subscriber owns a bounded buffer, and when that buffer is full the oldest
// queued message is discarded to make room. A lagging subscriber therefore
// stays connected and always receives the latest value.
//
// Basic usage:
//
//	b := broadcast.NewMemoryBroadcaster[string](16)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	_ = b.Publish(ctx, "toast", "saved")
//
//	for msg := range sub.Receive() {
//		fmt.Println(msg.Topic, msg.Data)
//	}
//
// A subscription ends when its context is cancelled, when Close is called on
// it, or when the broadcaster is closed. In every case the
// receive channel is closed so range loops terminate.
package broadcast
