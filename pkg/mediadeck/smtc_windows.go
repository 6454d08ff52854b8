//go:build windows

package mediadeck

import (
	"bytes"
	"fmt"
	"io"
	"syscall"
	"time"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// WinRT runtime class and interface IDs for the system media transport
// controls (SMTC) surface.
const (
	sessionManagerClassName = "Windows.Media.Control.GlobalSystemMediaTransportControlsSessionManager"
	streamsBufferClassName  = "Windows.Storage.Streams.Buffer"

	iidSessionManagerStatics = "{2050C4EE-11A0-57DE-AEBB-C569AC6C9E20}"
	iidBufferFactory         = "{71AF914D-C10F-484B-BC50-14BC623B3A27}"
	iidInputStream           = "{905A0FE2-BC53-11DF-8C49-001E4FC686DA}"
	iidBufferByteAccess      = "{905A0FEF-BC53-11DF-8C49-001E4FC686DA}"
	iidAsyncInfo             = "{00000036-0000-0000-C000-000000000046}"

	// WinRT AsyncStatus values
	asyncStatusStarted   = 0
	asyncStatusCompleted = 1
	asyncStatusCanceled  = 2
	asyncStatusError     = 3

	// InputStreamOptions.ReadAhead
	inputStreamOptionsReadAhead = 1

	// Bounded wait for individual WinRT async operations. The bridge imposes
	// the user-facing timeout; this only prevents an abandoned worker task
	// from spinning forever.
	asyncWaitTimeout  = 2 * time.Second
	asyncPollInterval = 5 * time.Millisecond
)

// smtcSessionProvider acquires WinRT session-manager handles. Requires
// Windows 10+; the constructor gates on the OS version so the rest of the
// process can degrade cleanly on older systems.
type smtcSessionProvider struct {
	logger *zap.SugaredLogger
}

func newSessionProvider(logger *zap.SugaredLogger) (SessionProvider, error) {
	if maj, _, _ := windows.RtlGetNtVersionNumbers(); maj < 10 {
		return nil, fmt.Errorf("media sessions require Windows 10 or newer (detected major version %d)", maj)
	}

	p := &smtcSessionProvider{
		logger: logger.Named("smtc"),
	}

	p.logger.Debug("Created SMTC session provider instance")
	return p, nil
}

// AcquireManager requests a fresh session-manager handle from WinRT.
func (p *smtcSessionProvider) AcquireManager() (SessionManager, error) {
	// Initialize the Windows Runtime for this thread. The bridge worker is
	// OS-thread-locked, so redundant initialization is the common case after
	// the first acquisition.
	if err := ole.RoInitialize(1); err != nil {
		if oleErr, ok := err.(*ole.OleError); ok && oleErr.Code() == 1 {
			// S_FALSE: already initialized on this thread
		} else {
			p.logger.Warnw("Failed to initialize Windows Runtime", "error", err)
			return nil, fmt.Errorf("initialize windows runtime: %w", err)
		}
	}

	factory, err := ole.RoGetActivationFactory(sessionManagerClassName, ole.NewGUID(iidSessionManagerStatics))
	if err != nil {
		p.logger.Warnw("Failed to get session manager activation factory", "error", err)
		return nil, fmt.Errorf("get session manager factory: %w", err)
	}
	statics := (*iSessionManagerStatics)(unsafe.Pointer(factory))
	defer statics.Release()

	var op *iAsyncOperation
	hr, _, _ := syscall.SyscallN(statics.VTable().RequestAsync,
		uintptr(unsafe.Pointer(statics)),
		uintptr(unsafe.Pointer(&op)))
	if err := hresultErr(hr, "RequestAsync"); err != nil {
		return nil, err
	}

	result, err := awaitOperation(op)
	if err != nil {
		return nil, fmt.Errorf("await session manager: %w", err)
	}

	p.logger.Debug("Acquired WinRT session manager")

	return &smtcManager{
		logger:  p.logger,
		manager: (*iSessionManager)(unsafe.Pointer(result)),
	}, nil
}

// smtcManager wraps a live GlobalSystemMediaTransportControlsSessionManager.
type smtcManager struct {
	logger  *zap.SugaredLogger
	manager *iSessionManager
}

func (m *smtcManager) CurrentSession() (MediaSession, error) {
	var session *iSession
	hr, _, _ := syscall.SyscallN(m.manager.VTable().GetCurrentSession,
		uintptr(unsafe.Pointer(m.manager)),
		uintptr(unsafe.Pointer(&session)))
	if err := hresultErr(hr, "GetCurrentSession"); err != nil {
		return nil, err
	}

	// No current session is a normal null return, not a failure.
	if session == nil {
		return nil, nil
	}

	return &smtcSession{logger: m.logger, session: session}, nil
}

func (m *smtcManager) Sessions() ([]MediaSession, error) {
	var view *iVectorView
	hr, _, _ := syscall.SyscallN(m.manager.VTable().GetSessions,
		uintptr(unsafe.Pointer(m.manager)),
		uintptr(unsafe.Pointer(&view)))
	if err := hresultErr(hr, "GetSessions"); err != nil {
		return nil, err
	}
	defer view.Release()

	var size uint32
	hr, _, _ = syscall.SyscallN(view.VTable().GetSize,
		uintptr(unsafe.Pointer(view)),
		uintptr(unsafe.Pointer(&size)))
	if err := hresultErr(hr, "IVectorView::get_Size"); err != nil {
		return nil, err
	}

	sessions := make([]MediaSession, 0, size)
	for i := uint32(0); i < size; i++ {
		var session *iSession
		hr, _, _ = syscall.SyscallN(view.VTable().GetAt,
			uintptr(unsafe.Pointer(view)),
			uintptr(i),
			uintptr(unsafe.Pointer(&session)))
		if err := hresultErr(hr, "IVectorView::GetAt"); err != nil {
			return nil, err
		}
		if session != nil {
			sessions = append(sessions, &smtcSession{logger: m.logger, session: session})
		}
	}

	return sessions, nil
}

func (m *smtcManager) Release() {
	if m.manager != nil {
		m.manager.Release()
		m.manager = nil
	}
}

// smtcSession wraps one GlobalSystemMediaTransportControlsSession handle.
type smtcSession struct {
	logger  *zap.SugaredLogger
	session *iSession
}

func (s *smtcSession) SourceAppID() (string, error) {
	return readHStringProperty(uintptr(unsafe.Pointer(s.session)), s.session.VTable().GetSourceAppUserModelID)
}

func (s *smtcSession) PlaybackInfo() (PlaybackInfo, error) {
	var raw *iPlaybackInfo
	hr, _, _ := syscall.SyscallN(s.session.VTable().GetPlaybackInfo,
		uintptr(unsafe.Pointer(s.session)),
		uintptr(unsafe.Pointer(&raw)))
	if err := hresultErr(hr, "GetPlaybackInfo"); err != nil {
		return PlaybackInfo{}, err
	}
	defer raw.Release()

	var status int32
	hr, _, _ = syscall.SyscallN(raw.VTable().GetPlaybackStatus,
		uintptr(unsafe.Pointer(raw)),
		uintptr(unsafe.Pointer(&status)))
	if err := hresultErr(hr, "get_PlaybackStatus"); err != nil {
		return PlaybackInfo{}, err
	}

	var controls *iPlaybackControls
	hr, _, _ = syscall.SyscallN(raw.VTable().GetControls,
		uintptr(unsafe.Pointer(raw)),
		uintptr(unsafe.Pointer(&controls)))
	if err := hresultErr(hr, "get_Controls"); err != nil {
		return PlaybackInfo{}, err
	}
	defer controls.Release()

	info := PlaybackInfo{Status: PlaybackStatus(status)}
	vtbl := controls.VTable()

	for _, flag := range []struct {
		method uintptr
		target *bool
	}{
		{vtbl.GetIsPlayEnabled, &info.PlayEnabled},
		{vtbl.GetIsPauseEnabled, &info.PauseEnabled},
		{vtbl.GetIsPlayPauseToggleEnabled, &info.ToggleEnabled},
		{vtbl.GetIsNextEnabled, &info.NextEnabled},
		{vtbl.GetIsPreviousEnabled, &info.PreviousEnabled},
	} {
		var value byte
		hr, _, _ = syscall.SyscallN(flag.method,
			uintptr(unsafe.Pointer(controls)),
			uintptr(unsafe.Pointer(&value)))
		if err := hresultErr(hr, "playback controls getter"); err != nil {
			return PlaybackInfo{}, err
		}
		*flag.target = value != 0
	}

	return info, nil
}

func (s *smtcSession) MediaProperties() (MediaProperties, error) {
	props, err := s.mediaProperties()
	if err != nil {
		return MediaProperties{}, err
	}
	defer props.Release()

	title, err := readHStringProperty(uintptr(unsafe.Pointer(props)), props.VTable().GetTitle)
	if err != nil {
		return MediaProperties{}, fmt.Errorf("get title: %w", err)
	}

	artist, err := readHStringProperty(uintptr(unsafe.Pointer(props)), props.VTable().GetArtist)
	if err != nil {
		return MediaProperties{}, fmt.Errorf("get artist: %w", err)
	}

	albumArtist, err := readHStringProperty(uintptr(unsafe.Pointer(props)), props.VTable().GetAlbumArtist)
	if err != nil {
		return MediaProperties{}, fmt.Errorf("get album artist: %w", err)
	}

	var thumbRef *iStreamReference
	hr, _, _ := syscall.SyscallN(props.VTable().GetThumbnail,
		uintptr(unsafe.Pointer(props)),
		uintptr(unsafe.Pointer(&thumbRef)))
	if err := hresultErr(hr, "get_Thumbnail"); err != nil {
		return MediaProperties{}, err
	}
	if thumbRef != nil {
		thumbRef.Release()
	}

	return MediaProperties{
		Title:        title,
		Artist:       artist,
		AlbumArtist:  albumArtist,
		HasThumbnail: thumbRef != nil,
	}, nil
}

// OpenThumbnail reads the thumbnail stream into memory (capped at the
// default buffer capacity) and hands the bytes back as a reader.
func (s *smtcSession) OpenThumbnail() (io.ReadCloser, error) {
	props, err := s.mediaProperties()
	if err != nil {
		return nil, err
	}
	defer props.Release()

	var thumbRef *iStreamReference
	hr, _, _ := syscall.SyscallN(props.VTable().GetThumbnail,
		uintptr(unsafe.Pointer(props)),
		uintptr(unsafe.Pointer(&thumbRef)))
	if err := hresultErr(hr, "get_Thumbnail"); err != nil {
		return nil, err
	}
	if thumbRef == nil {
		return nil, nil
	}
	defer thumbRef.Release()

	var op *iAsyncOperation
	hr, _, _ = syscall.SyscallN(thumbRef.VTable().OpenReadAsync,
		uintptr(unsafe.Pointer(thumbRef)),
		uintptr(unsafe.Pointer(&op)))
	if err := hresultErr(hr, "OpenReadAsync"); err != nil {
		return nil, err
	}

	stream, err := awaitOperation(op)
	if err != nil {
		return nil, fmt.Errorf("await thumbnail stream: %w", err)
	}
	defer stream.Release()

	raw, err := readWinRTStream(stream)
	if err != nil {
		return nil, fmt.Errorf("read thumbnail stream: %w", err)
	}

	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (s *smtcSession) Play() (bool, error)            { return s.transportCall(s.session.VTable().TryPlayAsync, "TryPlayAsync") }
func (s *smtcSession) Pause() (bool, error)           { return s.transportCall(s.session.VTable().TryPauseAsync, "TryPauseAsync") }
func (s *smtcSession) TogglePlayPause() (bool, error) { return s.transportCall(s.session.VTable().TryTogglePlayPauseAsync, "TryTogglePlayPauseAsync") }
func (s *smtcSession) SkipNext() (bool, error)        { return s.transportCall(s.session.VTable().TrySkipNextAsync, "TrySkipNextAsync") }
func (s *smtcSession) SkipPrevious() (bool, error)    { return s.transportCall(s.session.VTable().TrySkipPreviousAsync, "TrySkipPreviousAsync") }

func (s *smtcSession) Release() {
	if s.session != nil {
		s.session.Release()
		s.session = nil
	}
}

func (s *smtcSession) mediaProperties() (*iMediaProperties, error) {
	var op *iAsyncOperation
	hr, _, _ := syscall.SyscallN(s.session.VTable().TryGetMediaPropertiesAsync,
		uintptr(unsafe.Pointer(s.session)),
		uintptr(unsafe.Pointer(&op)))
	if err := hresultErr(hr, "TryGetMediaPropertiesAsync"); err != nil {
		return nil, err
	}

	result, err := awaitOperation(op)
	if err != nil {
		return nil, fmt.Errorf("await media properties: %w", err)
	}

	return (*iMediaProperties)(unsafe.Pointer(result)), nil
}

// transportCall runs one Try*Async command and returns the OS acknowledgment.
func (s *smtcSession) transportCall(method uintptr, name string) (bool, error) {
	var op *iAsyncOperation
	hr, _, _ := syscall.SyscallN(method,
		uintptr(unsafe.Pointer(s.session)),
		uintptr(unsafe.Pointer(&op)))
	if err := hresultErr(hr, name); err != nil {
		return false, err
	}

	ok, err := awaitBoolOperation(op)
	if err != nil {
		return false, fmt.Errorf("await %s: %w", name, err)
	}

	return ok, nil
}

// readWinRTStream pulls the contents of an IRandomAccessStream into memory
// through a WinRT buffer, capped at the default thumbnail capacity.
func readWinRTStream(stream *ole.IInspectable) ([]byte, error) {
	input, err := queryRawInterface(&stream.IUnknown, ole.NewGUID(iidInputStream))
	if err != nil {
		return nil, fmt.Errorf("query IInputStream: %w", err)
	}
	inputStream := (*iInputStream)(unsafe.Pointer(input))
	defer inputStream.Release()

	buffer, err := newWinRTBuffer(defaultThumbnailMaxBytes)
	if err != nil {
		return nil, err
	}
	defer buffer.Release()

	var op *iAsyncOperationWithProgress
	hr, _, _ := syscall.SyscallN(inputStream.VTable().ReadAsync,
		uintptr(unsafe.Pointer(inputStream)),
		uintptr(unsafe.Pointer(buffer)),
		uintptr(uint32(defaultThumbnailMaxBytes)),
		uintptr(inputStreamOptionsReadAhead),
		uintptr(unsafe.Pointer(&op)))
	if err := hresultErr(hr, "ReadAsync"); err != nil {
		return nil, err
	}

	filled, err := awaitReadOperation(op)
	if err != nil {
		return nil, fmt.Errorf("await stream read: %w", err)
	}
	defer filled.Release()

	return copyBufferBytes(filled)
}

// newWinRTBuffer creates a Windows.Storage.Streams.Buffer of the given capacity.
func newWinRTBuffer(capacity int) (*iBuffer, error) {
	factory, err := ole.RoGetActivationFactory(streamsBufferClassName, ole.NewGUID(iidBufferFactory))
	if err != nil {
		return nil, fmt.Errorf("get buffer factory: %w", err)
	}
	bufferFactory := (*iBufferFactory)(unsafe.Pointer(factory))
	defer bufferFactory.Release()

	var buffer *iBuffer
	hr, _, _ := syscall.SyscallN(bufferFactory.VTable().Create,
		uintptr(unsafe.Pointer(bufferFactory)),
		uintptr(uint32(capacity)),
		uintptr(unsafe.Pointer(&buffer)))
	if err := hresultErr(hr, "IBufferFactory::Create"); err != nil {
		return nil, err
	}

	return buffer, nil
}

// copyBufferBytes copies an IBuffer's valid contents into a Go slice via
// IBufferByteAccess.
func copyBufferBytes(buffer *iBuffer) ([]byte, error) {
	var length uint32
	hr, _, _ := syscall.SyscallN(buffer.VTable().GetLength,
		uintptr(unsafe.Pointer(buffer)),
		uintptr(unsafe.Pointer(&length)))
	if err := hresultErr(hr, "IBuffer::get_Length"); err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}

	raw, err := queryRawInterface(&buffer.IUnknown, ole.NewGUID(iidBufferByteAccess))
	if err != nil {
		return nil, fmt.Errorf("query IBufferByteAccess: %w", err)
	}
	byteAccess := (*iBufferByteAccess)(unsafe.Pointer(raw))
	defer byteAccess.Release()

	var dataPtr *byte
	hr, _, _ = syscall.SyscallN(byteAccess.VTable().Buffer,
		uintptr(unsafe.Pointer(byteAccess)),
		uintptr(unsafe.Pointer(&dataPtr)))
	if err := hresultErr(hr, "IBufferByteAccess::Buffer"); err != nil {
		return nil, err
	}

	out := make([]byte, length)
	copy(out, unsafe.Slice(dataPtr, length))
	return out, nil
}

// --- async plumbing ---

// awaitOperation waits for an IAsyncOperation<T> yielding an interface
// pointer and returns the result.
func awaitOperation(op *iAsyncOperation) (*ole.IInspectable, error) {
	defer op.Release()

	if err := waitForAsync(&op.IUnknown); err != nil {
		return nil, err
	}

	var result *ole.IInspectable
	hr, _, _ := syscall.SyscallN(op.VTable().GetResults,
		uintptr(unsafe.Pointer(op)),
		uintptr(unsafe.Pointer(&result)))
	if err := hresultErr(hr, "IAsyncOperation::GetResults"); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("async operation returned a null result")
	}

	return result, nil
}

// awaitBoolOperation waits for an IAsyncOperation<bool>.
func awaitBoolOperation(op *iAsyncOperation) (bool, error) {
	defer op.Release()

	if err := waitForAsync(&op.IUnknown); err != nil {
		return false, err
	}

	var result byte
	hr, _, _ := syscall.SyscallN(op.VTable().GetResults,
		uintptr(unsafe.Pointer(op)),
		uintptr(unsafe.Pointer(&result)))
	if err := hresultErr(hr, "IAsyncOperation<bool>::GetResults"); err != nil {
		return false, err
	}

	return result != 0, nil
}

// awaitReadOperation waits for the IAsyncOperationWithProgress returned by
// IInputStream::ReadAsync and returns the filled buffer.
func awaitReadOperation(op *iAsyncOperationWithProgress) (*iBuffer, error) {
	defer op.Release()

	if err := waitForAsync(&op.IUnknown); err != nil {
		return nil, err
	}

	var result *iBuffer
	hr, _, _ := syscall.SyscallN(op.VTable().GetResults,
		uintptr(unsafe.Pointer(op)),
		uintptr(unsafe.Pointer(&result)))
	if err := hresultErr(hr, "IAsyncOperationWithProgress::GetResults"); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("stream read returned a null buffer")
	}

	return result, nil
}

// waitForAsync polls the operation's IAsyncInfo status until it leaves the
// Started state or the bounded wait expires.
func waitForAsync(op *ole.IUnknown) error {
	raw, err := queryRawInterface(op, ole.NewGUID(iidAsyncInfo))
	if err != nil {
		return fmt.Errorf("query IAsyncInfo: %w", err)
	}
	info := (*iAsyncInfo)(unsafe.Pointer(raw))
	defer info.Release()

	deadline := time.Now().Add(asyncWaitTimeout)

	for {
		var status int32
		hr, _, _ := syscall.SyscallN(info.VTable().GetStatus,
			uintptr(unsafe.Pointer(info)),
			uintptr(unsafe.Pointer(&status)))
		if err := hresultErr(hr, "IAsyncInfo::get_Status"); err != nil {
			return err
		}

		switch status {
		case asyncStatusCompleted:
			return nil
		case asyncStatusCanceled:
			return fmt.Errorf("async operation was canceled")
		case asyncStatusError:
			var code uintptr
			syscall.SyscallN(info.VTable().GetErrorCode,
				uintptr(unsafe.Pointer(info)),
				uintptr(unsafe.Pointer(&code)))
			return fmt.Errorf("async operation failed: HRESULT=0x%08X", code)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("async operation did not complete within %s", asyncWaitTimeout)
		}
		time.Sleep(asyncPollInterval)
	}
}

// readHStringProperty calls a property getter returning an HSTRING and
// converts it to a Go string.
func readHStringProperty(this uintptr, method uintptr) (string, error) {
	var hs ole.HString
	hr, _, _ := syscall.SyscallN(method, this, uintptr(unsafe.Pointer(&hs)))
	if err := hresultErr(hr, "string property getter"); err != nil {
		return "", err
	}
	defer ole.DeleteHString(hs)

	return hs.String(), nil
}

// queryRawInterface performs a raw QueryInterface through the vtable,
// returning the acquired interface as an IUnknown.
func queryRawInterface(self *ole.IUnknown, iid *ole.GUID) (*ole.IUnknown, error) {
	var out *ole.IUnknown
	vtbl := (*ole.IUnknownVtbl)(unsafe.Pointer(self.RawVTable))

	hr, _, _ := syscall.SyscallN(vtbl.QueryInterface,
		uintptr(unsafe.Pointer(self)),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&out)))
	if err := hresultErr(hr, "QueryInterface"); err != nil {
		return nil, err
	}

	return out, nil
}

// hresultErr converts a failed HRESULT into an error; success returns nil.
func hresultErr(hr uintptr, context string) error {
	if int32(hr) < 0 {
		return fmt.Errorf("%s failed: HRESULT=0x%08X", context, uint32(hr))
	}
	return nil
}

// --- vtable declarations ---
//
// Method order follows each interface's metadata declaration order; only the
// slots this widget calls are named past the ones we must skip over.

type iSessionManagerStatics struct {
	ole.IInspectable
}

type iSessionManagerStaticsVtbl struct {
	ole.IInspectableVtbl
	RequestAsync uintptr
}

func (v *iSessionManagerStatics) VTable() *iSessionManagerStaticsVtbl {
	return (*iSessionManagerStaticsVtbl)(unsafe.Pointer(v.RawVTable))
}

type iSessionManager struct {
	ole.IInspectable
}

type iSessionManagerVtbl struct {
	ole.IInspectableVtbl
	GetCurrentSession           uintptr
	GetSessions                 uintptr
	AddCurrentSessionChanged    uintptr
	RemoveCurrentSessionChanged uintptr
	AddSessionsChanged          uintptr
	RemoveSessionsChanged       uintptr
}

func (v *iSessionManager) VTable() *iSessionManagerVtbl {
	return (*iSessionManagerVtbl)(unsafe.Pointer(v.RawVTable))
}

type iSession struct {
	ole.IInspectable
}

type iSessionVtbl struct {
	ole.IInspectableVtbl
	GetSourceAppUserModelID    uintptr
	TryGetMediaPropertiesAsync uintptr
	GetTimelineProperties      uintptr
	GetPlaybackInfo            uintptr
	TryPlayAsync               uintptr
	TryPauseAsync              uintptr
	TryStopAsync               uintptr
	TryRecordAsync             uintptr
	TryFastForwardAsync        uintptr
	TryRewindAsync             uintptr
	TrySkipNextAsync           uintptr
	TrySkipPreviousAsync       uintptr
	TryChangeChannelUpAsync    uintptr
	TryChangeChannelDownAsync  uintptr
	TryTogglePlayPauseAsync    uintptr
}

func (v *iSession) VTable() *iSessionVtbl {
	return (*iSessionVtbl)(unsafe.Pointer(v.RawVTable))
}

type iVectorView struct {
	ole.IInspectable
}

type iVectorViewVtbl struct {
	ole.IInspectableVtbl
	GetAt   uintptr
	GetSize uintptr
	IndexOf uintptr
	GetMany uintptr
}

func (v *iVectorView) VTable() *iVectorViewVtbl {
	return (*iVectorViewVtbl)(unsafe.Pointer(v.RawVTable))
}

type iPlaybackInfo struct {
	ole.IInspectable
}

type iPlaybackInfoVtbl struct {
	ole.IInspectableVtbl
	GetControls        uintptr
	GetPlaybackStatus  uintptr
	GetPlaybackType    uintptr
	GetAutoRepeatMode  uintptr
	GetPlaybackRate    uintptr
	GetIsShuffleActive uintptr
}

func (v *iPlaybackInfo) VTable() *iPlaybackInfoVtbl {
	return (*iPlaybackInfoVtbl)(unsafe.Pointer(v.RawVTable))
}

type iPlaybackControls struct {
	ole.IInspectable
}

type iPlaybackControlsVtbl struct {
	ole.IInspectableVtbl
	GetIsPlayEnabled             uintptr
	GetIsPauseEnabled            uintptr
	GetIsStopEnabled             uintptr
	GetIsRecordEnabled           uintptr
	GetIsFastForwardEnabled      uintptr
	GetIsRewindEnabled           uintptr
	GetIsNextEnabled             uintptr
	GetIsPreviousEnabled         uintptr
	GetIsChannelUpEnabled        uintptr
	GetIsChannelDownEnabled      uintptr
	GetIsPlayPauseToggleEnabled  uintptr
	GetIsShuffleEnabled          uintptr
	GetIsRepeatEnabled           uintptr
	GetIsPlaybackRateEnabled     uintptr
	GetIsPlaybackPositionEnabled uintptr
}

func (v *iPlaybackControls) VTable() *iPlaybackControlsVtbl {
	return (*iPlaybackControlsVtbl)(unsafe.Pointer(v.RawVTable))
}

type iMediaProperties struct {
	ole.IInspectable
}

type iMediaPropertiesVtbl struct {
	ole.IInspectableVtbl
	GetTitle           uintptr
	GetSubtitle        uintptr
	GetAlbumArtist     uintptr
	GetArtist          uintptr
	GetAlbumTitle      uintptr
	GetTrackNumber     uintptr
	GetGenres          uintptr
	GetAlbumTrackCount uintptr
	GetPlaybackType    uintptr
	GetThumbnail       uintptr
}

func (v *iMediaProperties) VTable() *iMediaPropertiesVtbl {
	return (*iMediaPropertiesVtbl)(unsafe.Pointer(v.RawVTable))
}

type iStreamReference struct {
	ole.IInspectable
}

type iStreamReferenceVtbl struct {
	ole.IInspectableVtbl
	OpenReadAsync uintptr
}

func (v *iStreamReference) VTable() *iStreamReferenceVtbl {
	return (*iStreamReferenceVtbl)(unsafe.Pointer(v.RawVTable))
}

type iInputStream struct {
	ole.IInspectable
}

type iInputStreamVtbl struct {
	ole.IInspectableVtbl
	ReadAsync uintptr
}

func (v *iInputStream) VTable() *iInputStreamVtbl {
	return (*iInputStreamVtbl)(unsafe.Pointer(v.RawVTable))
}

type iBuffer struct {
	ole.IInspectable
}

type iBufferVtbl struct {
	ole.IInspectableVtbl
	GetCapacity uintptr
	GetLength   uintptr
	PutLength   uintptr
}

func (v *iBuffer) VTable() *iBufferVtbl {
	return (*iBufferVtbl)(unsafe.Pointer(v.RawVTable))
}

type iBufferFactory struct {
	ole.IInspectable
}

type iBufferFactoryVtbl struct {
	ole.IInspectableVtbl
	Create uintptr
}

func (v *iBufferFactory) VTable() *iBufferFactoryVtbl {
	return (*iBufferFactoryVtbl)(unsafe.Pointer(v.RawVTable))
}

// iBufferByteAccess is COM (IUnknown-based), not WinRT.
type iBufferByteAccess struct {
	ole.IUnknown
}

type iBufferByteAccessVtbl struct {
	ole.IUnknownVtbl
	Buffer uintptr
}

func (v *iBufferByteAccess) VTable() *iBufferByteAccessVtbl {
	return (*iBufferByteAccessVtbl)(unsafe.Pointer(v.RawVTable))
}

type iAsyncInfo struct {
	ole.IInspectable
}

type iAsyncInfoVtbl struct {
	ole.IInspectableVtbl
	GetID        uintptr
	GetStatus    uintptr
	GetErrorCode uintptr
	Cancel       uintptr
	Close        uintptr
}

func (v *iAsyncInfo) VTable() *iAsyncInfoVtbl {
	return (*iAsyncInfoVtbl)(unsafe.Pointer(v.RawVTable))
}

type iAsyncOperation struct {
	ole.IInspectable
}

type iAsyncOperationVtbl struct {
	ole.IInspectableVtbl
	PutCompleted uintptr
	GetCompleted uintptr
	GetResults   uintptr
}

func (v *iAsyncOperation) VTable() *iAsyncOperationVtbl {
	return (*iAsyncOperationVtbl)(unsafe.Pointer(v.RawVTable))
}

type iAsyncOperationWithProgress struct {
	ole.IInspectable
}

type iAsyncOperationWithProgressVtbl struct {
	ole.IInspectableVtbl
	PutProgress  uintptr
	GetProgress  uintptr
	PutCompleted uintptr
	GetCompleted uintptr
	GetResults   uintptr
}

func (v *iAsyncOperationWithProgress) VTable() *iAsyncOperationWithProgressVtbl {
	return (*iAsyncOperationWithProgressVtbl)(unsafe.Pointer(v.RawVTable))
}
