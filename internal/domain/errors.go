package domain

import "errors"

var (
	ErrKeyNotFound       = errors.New("key not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrMessageNotFound   = errors.New("message not found")
	ErrLastSession       = errors.New("cannot delete the last remaining session")
	ErrEmptyConversation = errors.New("conversation is empty")
	ErrSwitchInProgress  = errors.New("role switch already in progress")
	ErrTutorialInactive  = errors.New("tutorial is not active")
	ErrStepTransitioning = errors.New("tutorial step is still transitioning")
	ErrInvalidFormat     = errors.New("invalid export format")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidFramework  = errors.New("invalid mentor-assist framework")
	ErrBlankMessage      = errors.New("message is blank")
	ErrInputLocked       = errors.New("input is locked while the role switch countdown runs")
	ErrTutorialLocked    = errors.New("not available at this tutorial step")
)
