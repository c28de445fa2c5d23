package domain

// Message identifies a user-facing text. Front ends may localise it; the
// identifier itself is stable.
type Message string

const (
	MsgLoginInProgress   Message = "login in progress"
	MsgLoginFailed       Message = "login failed"
	MsgServerError       Message = "server error"
	MsgServerUnreachable Message = "server unreachable"
	MsgNoNetwork         Message = "no network"
	MsgGenericError      Message = "generic error"

	MsgHomeLoading        Message = "loading"
	MsgNoPrimaryAccount   Message = "no primary account found"
	MsgHomeServerError    Message = "accounts unavailable: server error"
	MsgHomeUnreachable    Message = "accounts unavailable: server unreachable"
	MsgHomeNoNetwork      Message = "accounts unavailable: no network"
	MsgHomeGenericError   Message = "accounts unavailable"
	MsgTransferInProgress Message = "transfer in progress"
	MsgTransferRefused    Message = "transfer refused"
	MsgTransferServer     Message = "transfer failed: server error"
	MsgTransferUnreach    Message = "transfer failed: server unreachable"
	MsgTransferNoNetwork  Message = "transfer failed: no network"
	MsgTransferGeneric    Message = "transfer failed"
)

// FailureMessages maps each NetworkError variant to the message a screen shows.
type FailureMessages struct {
	Server  Message
	Timeout Message
	Refused Message
	Unknown Message
}

// For returns the message for err. Errors outside the taxonomy map to Unknown.
func (f FailureMessages) For(err error) Message {
	switch e := AsNetworkError(err).(type) {
	case *ServerError:
		return f.Server
	case *ConnectivityError:
		if e.TimedOut {
			return f.Timeout
		}
		return f.Refused
	default:
		return f.Unknown
	}
}

var (
	LoginFailures = FailureMessages{
		Server:  MsgServerError,
		Timeout: MsgServerUnreachable,
		Refused: MsgNoNetwork,
		Unknown: MsgGenericError,
	}
	HomeFailures = FailureMessages{
		Server:  MsgHomeServerError,
		Timeout: MsgHomeUnreachable,
		Refused: MsgHomeNoNetwork,
		Unknown: MsgHomeGenericError,
	}
	TransferFailures = FailureMessages{
		Server:  MsgTransferServer,
		Timeout: MsgTransferUnreach,
		Refused: MsgTransferNoNetwork,
		Unknown: MsgTransferGeneric,
	}
)
