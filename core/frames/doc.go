// Package frames defines the units received from the backend connection.
//
// A frame is either binary audio or a control event decoded from a JSON text
// message. Control events are discriminated by their "type" field:
//
//   - UpdateTitle: {"type":"UpdateTitle","title":string}
//   - ChangeScene: {"type":"ChangeScene","index":int}
//   - Speech: {"type":"Speech","vtb_name":string,"message":string,
//     "motion"?:string,"waker"?:string,"voice"?:bool}
//
// Unknown types are reported with [ErrUnknownKind] so newer backends can add
// events without breaking older clients.
package frames
